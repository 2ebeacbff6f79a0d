/*
Package fmindex implements a run-length FM-index: a compressed self-index
supporting backward search, locate, and count over a sentinel-terminated
genome, built from its Burrows-Wheeler transform.

Construction runs once, single-threaded, and produces an immutable
structure safe for concurrent read-only queries (spec's concurrency model:
no locks needed because nothing ever mutates after New returns).
*/
package fmindex

import (
	"github.com/LucasOJ/read-mapping/alphabet"
	"github.com/LucasOJ/read-mapping/suffixarray"
)

// DefaultR and DefaultK are the construction-time sampling periods spec'd
// as reasonable defaults: rank checkpoints every 64 runs, SA samples every
// 32 text positions.
const (
	DefaultR = 64
	DefaultK = 32
)

// FmIndex aggregates the run-length BWT, the C-table, and the sampled
// suffix array for one sentinel-terminated sequence. It owns all of these
// exclusively and exposes no way to mutate them after construction.
type FmIndex struct {
	length    int // genome length n, excluding the sentinel
	bwt       rleBwt
	cTable    cTable
	sampledSA sampledSA
	r, k      int
}

// New builds an FmIndex over seq with an implicit trailing sentinel, using
// rank-checkpoint period r and SA-sample period k.
func New(seq alphabet.PackedSequence, r, k int) (idx *FmIndex, err error) {
	defer recoverToError("New", &err)

	if seq.Len() == 0 {
		return nil, ErrEmptyGenome
	}

	sa, err := suffixarray.Build(seq)
	if err != nil {
		return nil, err
	}

	n := seq.Len()
	bwtSymbols := make([]alphabet.Symbol, n+1)
	for i, pos := range sa {
		if pos == 0 {
			bwtSymbols[i] = alphabet.Sentinel
		} else {
			bwtSymbols[i] = seq.Get(pos - 1)
		}
	}

	bwt := buildRleBwt(bwtSymbols, r)
	c := buildCTable(bwt)
	ssa := buildSampledSA(sa, k)

	return &FmIndex{
		length:    n,
		bwt:       bwt,
		cTable:    c,
		sampledSA: ssa,
		r:         r,
		k:         k,
	}, nil
}

// Len returns the genome length (excluding the sentinel).
func (idx *FmIndex) Len() int {
	return idx.length
}

// totalRows is n+1: the number of rows of the conceptual Burrows-Wheeler
// matrix, counting the sentinel's own row.
func (idx *FmIndex) totalRows() int {
	return idx.length + 1
}

// SymbolAt returns the BWT symbol at row i.
func (idx *FmIndex) SymbolAt(i int) alphabet.Symbol {
	return idx.bwt.symbolAt(i)
}

// Lf maps row i to the row whose suffix is extended by one character to the
// left (it starts one genome position earlier): the backward LF step
// C[BWT[i]] + rank(BWT[i], i).
func (idx *FmIndex) Lf(i int) int {
	sigma := idx.bwt.symbolAt(i)
	return idx.cTable[sigma] + idx.bwt.rank(sigma, i)
}

// BackwardSearch narrows [0, n+1) one pattern symbol at a time, right to
// left, returning the half-open SA range of rows whose suffix has pattern
// as a prefix. An empty pattern returns the full range; a pattern that
// cannot occur returns an empty range (low == high). The sentinel never
// occurs inside a real pattern, so any pattern containing it returns empty
// immediately rather than walking a C-table column that represents the
// single synthetic end-of-genome row.
func (idx *FmIndex) BackwardSearch(pattern []alphabet.Symbol) (low, high int) {
	for _, sigma := range pattern {
		if sigma == alphabet.Sentinel {
			return 0, 0
		}
	}

	low, high = 0, idx.totalRows()
	for i := len(pattern) - 1; i >= 0; i-- {
		if high <= low {
			return 0, 0
		}
		sigma := pattern[i]
		low = idx.cTable[sigma] + idx.bwt.rank(sigma, low)
		high = idx.cTable[sigma] + idx.bwt.rank(sigma, high)
	}
	if high <= low {
		return 0, 0
	}
	return low, high
}

// Count returns the number of occurrences of pattern in the indexed
// sequence.
func (idx *FmIndex) Count(pattern []alphabet.Symbol) int {
	low, high := idx.BackwardSearch(pattern)
	return high - low
}

// Locate returns the genome position corresponding to row i: the starting
// offset of the suffix whose row in the BWT matrix is i. It walks Lf until
// a sampled row is reached, guaranteed within k steps.
func (idx *FmIndex) Locate(i int) int {
	steps := 0
	for !idx.sampledSA.isSampled(i) {
		i = idx.Lf(i)
		steps++
	}
	return (idx.sampledSA.sampleAt(i) + steps) % idx.totalRows()
}

// RowForPosition is the inverse of Locate: given a genome position p in
// [0, n], it returns the BWT row whose suffix starts at p. It rounds p up
// to the nearest sampled position and walks Lf backward the remainder,
// mirroring Locate's cost bound. This is additive bookkeeping over the
// same samples Locate already uses (see DESIGN.md); it does not change the
// persisted sampled-SA format.
func (idx *FmIndex) RowForPosition(p int) int {
	sampled := idx.sampledSA.nearestSampledPositionAtOrAbove(p, idx.length)
	row := idx.sampledSA.posToRow[sampled]
	for steps := sampled - p; steps > 0; steps-- {
		row = idx.Lf(row)
	}
	return row
}
