/*
Package mapper implements seed-and-extend short-read mapping on top of a
pair of FM-indexes: one over the genome, one over its reverse.

A single FM-index's backward search only ever grows a match leftward. To
extend a seed toward the read's 3' end without storing the raw genome, the
reverse index is walked instead: its BWT symbol at a row is exactly the
forward-genome character immediately following that row's aligned position,
so stepping Lf on the reverse index and reading symbols off it simulates
forward extension for free, from the very row the seed lookup already
produced. Backward extension mirrors this on the forward index, bootstrapped
from an arbitrary genome position via FmIndex.RowForPosition.
*/
package mapper

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/LucasOJ/read-mapping/alphabet"
	"github.com/LucasOJ/read-mapping/fmindex"
)

// ErrInvalidArgument is returned when seed_len < 1, max_seeds < 1, or the
// read is shorter than seed_len.
var ErrInvalidArgument = errors.New("mapper: invalid argument")

// MapResult is the outcome of mapping one read: either a Hit at a single
// genome position, or a Miss.
type MapResult struct {
	Hit           bool
	Position      int
	MatchedLength int
}

// Miss is the zero-value MapResult returned when no seed produces a fully
// extending candidate.
var Miss = MapResult{}

// ReadMappingIndex owns the forward and reverse FM-indexes over a genome
// and the genome length. It retains no other representation of the genome;
// map_read recovers genome characters only by walking the two indexes.
type ReadMappingIndex struct {
	forward *fmindex.FmIndex
	reverse *fmindex.FmIndex
	length  int
}

// New builds both FM-indexes for genome, using sampling periods r and k for
// each.
func New(genome alphabet.PackedSequence, r, k int) (*ReadMappingIndex, error) {
	forward, err := fmindex.New(genome, r, k)
	if err != nil {
		return nil, err
	}
	reverse, err := fmindex.New(genome.Reverse(), r, k)
	if err != nil {
		return nil, err
	}
	return &ReadMappingIndex{forward: forward, reverse: reverse, length: genome.Len()}, nil
}

// Len returns the genome length.
func (idx *ReadMappingIndex) Len() int {
	return idx.length
}

// Forward returns the FM-index built over the genome itself.
func (idx *ReadMappingIndex) Forward() *fmindex.FmIndex {
	return idx.forward
}

// Reverse returns the FM-index built over the reversed genome.
func (idx *ReadMappingIndex) Reverse() *fmindex.FmIndex {
	return idx.reverse
}

// FromFmIndexes assembles a ReadMappingIndex from a pair of already-built
// FM-indexes (forward over the genome, reverse over its reverse) and the
// shared genome length. Used by the persist package to reconstruct an
// index loaded from disk without rebuilding it from genome bytes.
func FromFmIndexes(forward, reverse *fmindex.FmIndex, length int) *ReadMappingIndex {
	return &ReadMappingIndex{forward: forward, reverse: reverse, length: length}
}

// MapRead reports a single position in the genome where a contiguous
// window of the read, starting from one of its first max_seeds disjoint
// seed_len-length seeds, matches exactly and extends (with no mismatches)
// to cover the entire read. Returns Miss if no seed produces such a match.
func (idx *ReadMappingIndex) MapRead(read []alphabet.Symbol, seedLen, maxSeeds int) (MapResult, error) {
	if seedLen < 1 || maxSeeds < 1 || len(read) < seedLen {
		return MapResult{}, ErrInvalidArgument
	}

	numSeeds := len(read) / seedLen
	if maxSeeds < numSeeds {
		numSeeds = maxSeeds
	}

	for k := 0; k < numSeeds; k++ {
		seedStart := k * seedLen
		seed := read[seedStart : seedStart+seedLen]
		reversedSeed := reverseSymbols(seed)

		low, high := idx.reverse.BackwardSearch(reversedSeed)
		if high <= low {
			continue
		}

		// BackwardSearch already returns [low, high) in ascending row order,
		// but the first-hit policy depends on that order explicitly, so it
		// is made explicit here rather than assumed from the caller's
		// internals.
		candidates := make([]int, 0, high-low)
		for row := low; row < high; row++ {
			candidates = append(candidates, row)
		}
		slices.Sort(candidates)

		for _, row := range candidates {
			pRev := idx.reverse.Locate(row)
			p := idx.length - pRev - seedLen

			if result, ok := idx.tryExtend(read, seedStart, seedLen, p, row); ok {
				return result, nil
			}
		}
	}

	return Miss, nil
}

// tryExtend attempts full-read-coverage extension from a seed match at
// genome position p, read offset seedStart, whose reverse-index row is
// seedRow (the same row seed lookup already located — reused as the
// starting point for forward extension, at no extra cost).
func (idx *ReadMappingIndex) tryExtend(read []alphabet.Symbol, seedStart, seedLen, p, seedRow int) (MapResult, bool) {
	if !idx.extendForward(read, seedStart+seedLen, seedRow) {
		return MapResult{}, false
	}
	if !idx.extendBackward(read, seedStart-1, p) {
		return MapResult{}, false
	}

	return MapResult{
		Hit:           true,
		Position:      p - seedStart,
		MatchedLength: len(read),
	}, true
}

// extendForward walks the reverse index's Lf starting at seedRow, comparing
// its BWT symbol (the next forward-genome character) against read symbols
// from readPos to the end of the read. Reaching the sentinel (end of
// genome) produces a symbol no real read base equals, so running off the
// genome fails extension exactly as running into a real mismatch does.
func (idx *ReadMappingIndex) extendForward(read []alphabet.Symbol, readPos, row int) bool {
	for readPos < len(read) {
		sym := idx.reverse.SymbolAt(row)
		if sym == alphabet.Sentinel || sym != read[readPos] {
			return false
		}
		row = idx.reverse.Lf(row)
		readPos++
	}
	return true
}

// extendBackward walks the forward index's Lf starting from the row
// recovered for genome position p, comparing its BWT symbol (the preceding
// forward-genome character) against read symbols from readPos down to 0.
func (idx *ReadMappingIndex) extendBackward(read []alphabet.Symbol, readPos, p int) bool {
	if readPos < 0 {
		return true
	}
	row := idx.forward.RowForPosition(p)
	for readPos >= 0 {
		sym := idx.forward.SymbolAt(row)
		if sym == alphabet.Sentinel || sym != read[readPos] {
			return false
		}
		row = idx.forward.Lf(row)
		readPos--
	}
	return true
}

func reverseSymbols(s []alphabet.Symbol) []alphabet.Symbol {
	out := make([]alphabet.Symbol, len(s))
	for i, sym := range s {
		out[len(s)-1-i] = sym
	}
	return out
}
