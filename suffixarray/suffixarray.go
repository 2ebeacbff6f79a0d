/*
Package suffixarray builds the suffix array of a sentinel-terminated genome.

Construction runs the SA-IS algorithm (Nong, Zhang & Chen): classify
positions as S-type/L-type, induce-sort LMS substrings, recurse on the
reduced problem if LMS substrings aren't already uniquely named, then
induce-sort the full array from the recursively sorted LMS suffixes. This
gives O(n) time and O(n) auxiliary memory, comfortably inside the spec's
O(n log n) budget.

The suffix array produced here is used only at construction time, to derive
the BWT and the sampled-SA structures; callers discard it afterward.
*/
package suffixarray

import (
	"errors"

	"github.com/LucasOJ/read-mapping/alphabet"
)

// ErrEmptyGenome is returned when Build is called on a zero-length genome.
var ErrEmptyGenome = errors.New("suffixarray: empty genome")

// alphabetSize is the size of the integer alphabet SA-IS sorts over: the
// sentinel plus the four nucleotides.
const alphabetSize = 5

// Build returns the suffix array of seq with an implicit sentinel appended,
// where the sentinel sorts strictly less than every nucleotide. The result
// has length seq.Len()+1 and SA[0] always equals seq.Len() (the sentinel's
// own suffix).
func Build(seq alphabet.PackedSequence) ([]int, error) {
	n := seq.Len()
	if n == 0 {
		return nil, ErrEmptyGenome
	}

	encoded := make([]int, n+1)
	for i := 0; i < n; i++ {
		// Sentinel sorts smallest, so nucleotides are shifted up by one and
		// the trailing sentinel is left at 0.
		encoded[i] = int(seq.Get(i)) + 1
	}
	encoded[n] = 0

	sa := saisEntryPoint(encoded, alphabetSize)
	return sa, nil
}

func saisEntryPoint(s []int, alphabetSize int) []int {
	n := len(s)
	return sais(s, alphabetSize, n, make([]int, n), make([]int, n))
}

// sais constructs the suffix array for s, which must end in the unique
// smallest symbol (0), using the SA-IS induced-sorting algorithm.
func sais(s []int, alphabetSize int, n int, sa []int, lmsNames []int) []int {
	sa = sa[:n]
	for i := range sa {
		sa[i] = -1
	}
	if n == 0 {
		return sa
	}
	if n == 1 {
		sa[0] = 0
		return sa
	}

	sType := classifyTypes(s)

	var lmsPositions []int
	for i := 1; i < n; i++ {
		if sType[i] && !sType[i-1] {
			lmsPositions = append(lmsPositions, i)
		}
	}

	sa = induceSort(s, sa, sType, alphabetSize, lmsPositions)

	var sortedLMS []int
	for _, pos := range sa {
		if pos > 0 && sType[pos] && !sType[pos-1] {
			sortedLMS = append(sortedLMS, pos)
		}
	}

	lmsNames = lmsNames[:n]
	for i := range lmsNames {
		lmsNames[i] = -1
	}
	name := 0
	prev := -1
	for _, pos := range sortedLMS {
		if prev != -1 && !lmsSubstringsEqual(s, sType, prev, pos) {
			name++
		}
		lmsNames[pos] = name
		prev = pos
	}
	numNames := name + 1

	reduced := make([]int, 0, len(lmsPositions))
	for _, pos := range lmsPositions {
		reduced = append(reduced, lmsNames[pos])
	}

	var reducedSA []int
	if numNames < len(reduced) {
		reducedSA = sais(reduced, numNames, len(reduced), sa, lmsNames)
	} else {
		reducedSA = make([]int, len(reduced))
		for i, rank := range reduced {
			reducedSA[rank] = i
		}
	}

	orderedLMS := make([]int, len(reducedSA))
	for i, idx := range reducedSA {
		orderedLMS[i] = lmsPositions[idx]
	}

	for i := range sa {
		sa[i] = -1
	}
	sa = induceSort(s, sa, sType, alphabetSize, orderedLMS)
	return sa
}

// classifyTypes marks each position S-type (true) or L-type (false): S-type
// positions start a suffix that is lexicographically smaller than the
// suffix starting one position to the right.
func classifyTypes(s []int) []bool {
	n := len(s)
	t := make([]bool, n)
	t[n-1] = true
	for i := n - 2; i >= 0; i-- {
		switch {
		case s[i] < s[i+1]:
			t[i] = true
		case s[i] > s[i+1]:
			t[i] = false
		default:
			t[i] = t[i+1]
		}
	}
	return t
}

func induceSort(s []int, sa []int, sType []bool, alphabetSize int, lms []int) []int {
	bucketSizes := computeBucketSizes(s, alphabetSize)

	tails := computeBucketTails(bucketSizes)
	for i := len(lms) - 1; i >= 0; i-- {
		pos := lms[i]
		c := s[pos]
		sa[tails[c]] = pos
		tails[c]--
	}

	heads := computeBucketHeads(bucketSizes)
	for i := range sa {
		pos := sa[i]
		if pos > 0 && !sType[pos-1] {
			c := s[pos-1]
			sa[heads[c]] = pos - 1
			heads[c]++
		}
	}

	tails = computeBucketTails(bucketSizes)
	for i := len(sa) - 1; i >= 0; i-- {
		pos := sa[i]
		if pos > 0 && sType[pos-1] {
			c := s[pos-1]
			sa[tails[c]] = pos - 1
			tails[c]--
		}
	}
	return sa
}

func computeBucketSizes(s []int, alphabetSize int) []int {
	sizes := make([]int, alphabetSize)
	for _, c := range s {
		sizes[c]++
	}
	return sizes
}

func computeBucketHeads(sizes []int) []int {
	heads := make([]int, len(sizes))
	sum := 0
	for i, size := range sizes {
		heads[i] = sum
		sum += size
	}
	return heads
}

func computeBucketTails(sizes []int) []int {
	tails := make([]int, len(sizes))
	sum := 0
	for i, size := range sizes {
		sum += size
		tails[i] = sum - 1
	}
	return tails
}

// lmsSubstringsEqual compares the LMS substrings starting at i and j
// (both must be LMS positions) for equality, including their length.
func lmsSubstringsEqual(s []int, sType []bool, i, j int) bool {
	n := len(s)
	for d := 0; ; d++ {
		if s[i] != s[j] || sType[i] != sType[j] {
			return false
		}
		iIsLMS := i > 0 && sType[i] && !sType[i-1]
		jIsLMS := j > 0 && sType[j] && !sType[j-1]
		if d > 0 && iIsLMS && jIsLMS {
			return true
		}
		if d > 0 && iIsLMS != jIsLMS {
			return false
		}
		i++
		j++
		if i >= n || j >= n {
			return false
		}
	}
}
