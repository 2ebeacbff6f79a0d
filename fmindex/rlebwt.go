package fmindex

import (
	"golang.org/x/exp/slices"

	"github.com/LucasOJ/read-mapping/alphabet"
)

// run is a maximal block of equal adjacent BWT symbols.
type run struct {
	symbol alphabet.Symbol
	length int
}

// rleBwt is the BWT stored as runs plus sparse rank checkpoints, exactly as
// spec'd: checkpoints are only exact at every R-th run boundary, and rank
// queries walk the remaining runs by hand. This trades rank's worst-case
// cost (O(R) run steps) for checkpoint memory roughly R times smaller than
// recording an exact cumulative count at every run — the corpus's other
// BWT (soniakeys' sampled cp slice) makes the same trade for the same
// reason; the teacher's own search/bwt instead keeps an exact
// runCumulativeCounts table per run, which a fixed 5-symbol alphabet
// doesn't need to pay for.
type rleBwt struct {
	runs        []run
	runOffsets  []int // length len(runs)+1; runOffsets[i] is the BWT position where runs[i] starts
	checkpoints [5][]int
	r           int // sampling period: one checkpoint every r runs
}

// buildRleBwt coalesces a full BWT byte stream into runs and samples
// per-symbol checkpoints every r run boundaries.
func buildRleBwt(bwt []alphabet.Symbol, r int) rleBwt {
	var runs []run
	for _, sym := range bwt {
		if len(runs) > 0 && runs[len(runs)-1].symbol == sym {
			runs[len(runs)-1].length++
			continue
		}
		runs = append(runs, run{symbol: sym, length: 1})
	}

	runOffsets := make([]int, len(runs)+1)
	for i, rn := range runs {
		runOffsets[i+1] = runOffsets[i] + rn.length
	}

	var checkpoints [5][]int
	var running [5]int
	numCheckpoints := len(runs)/r + 1
	for sigma := range checkpoints {
		checkpoints[sigma] = make([]int, 0, numCheckpoints)
	}
	for i, rn := range runs {
		if i%r == 0 {
			for sigma := range checkpoints {
				checkpoints[sigma] = append(checkpoints[sigma], running[sigma])
			}
		}
		running[rn.symbol] += rn.length
	}

	return rleBwt{runs: runs, runOffsets: runOffsets, checkpoints: checkpoints, r: r}
}

// findRunContaining returns the run index r such that
// runOffsets[r] <= pos < runOffsets[r+1]. pos must be in [0, total length).
// runOffsets is sorted ascending by construction, so the lookup is a plain
// binary search over it rather than the run slice itself.
func (b rleBwt) findRunContaining(pos int) int {
	i, found := slices.BinarySearchFunc(b.runOffsets, pos, func(offset, target int) int {
		return offset - target
	})
	if found {
		return i
	}
	return i - 1
}

// symbolAt returns the BWT symbol at row i.
func (b rleBwt) symbolAt(i int) alphabet.Symbol {
	return b.runs[b.findRunContaining(i)].symbol
}

// rank returns the number of occurrences of sigma in BWT[0:i).
func (b rleBwt) rank(sigma alphabet.Symbol, i int) int {
	if i <= 0 {
		return 0
	}
	r := b.findRunContaining(i - 1)
	boundary := (r / b.r) * b.r

	count := b.checkpoints[sigma][boundary/b.r]
	for run := boundary; run < r; run++ {
		if b.runs[run].symbol == sigma {
			count += b.runs[run].length
		}
	}

	if b.runs[r].symbol == sigma {
		partial := i - b.runOffsets[r]
		if partial > b.runs[r].length {
			partial = b.runs[r].length
		}
		count += partial
	}
	return count
}

// total returns the number of occurrences of sigma across the whole BWT.
func (b rleBwt) total(sigma alphabet.Symbol) int {
	return b.rank(sigma, b.length())
}

func (b rleBwt) length() int {
	return b.runOffsets[len(b.runOffsets)-1]
}
