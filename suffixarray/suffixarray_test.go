package suffixarray_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/LucasOJ/read-mapping/alphabet"
	"github.com/LucasOJ/read-mapping/suffixarray"
)

// naiveSuffixArray sorts rotations the slow, obviously-correct way: build
// every suffix of s+"$" as a string (using a byte lower than 'A' for the
// sentinel) and sort lexicographically.
func naiveSuffixArray(s string) []int {
	withSentinel := s + "\x00"
	n := len(withSentinel)
	suffixes := make([]string, n)
	indices := make([]int, n)
	for i := 0; i < n; i++ {
		suffixes[i] = withSentinel[i:]
		indices[i] = i
	}
	sort.Slice(indices, func(a, b int) bool {
		return suffixes[indices[a]] < suffixes[indices[b]]
	})
	return indices
}

func buildFromString(t *testing.T, s string) []int {
	t.Helper()
	seq, err := alphabet.FromBytes([]byte(s))
	if err != nil {
		t.Fatalf("FromBytes(%q): %v", s, err)
	}
	sa, err := suffixarray.Build(seq)
	if err != nil {
		t.Fatalf("Build(%q): %v", s, err)
	}
	return sa
}

func TestBuildEmptyGenome(t *testing.T) {
	seq, _ := alphabet.FromBytes(nil)
	if _, err := suffixarray.Build(seq); err != suffixarray.ErrEmptyGenome {
		t.Fatalf("Build(empty) error = %v, want ErrEmptyGenome", err)
	}
}

func TestBuildKnownSequence(t *testing.T) {
	// The "banana" worked example, widely used to sanity-check BWT/SA code,
	// spelled over the nucleotide alphabet (b->C, a->A, n->G keeps the
	// letters' relative order).
	sa := buildFromString(t, "CAGAGA")
	want := naiveSuffixArray("CAGAGA")
	if len(sa) != len(want) {
		t.Fatalf("len(sa) = %d, want %d", len(sa), len(want))
	}
	for i := range want {
		if sa[i] != want[i] {
			t.Fatalf("sa[%d] = %d, want %d (full sa=%v, want=%v)", i, sa[i], want[i], sa, want)
		}
	}
}

func TestBuildSentinelIsFirstRow(t *testing.T) {
	sa := buildFromString(t, "ACGTACGT")
	if sa[0] != 8 {
		t.Fatalf("sa[0] = %d, want 8 (sentinel position)", sa[0])
	}
}

// TestBuildAgainstNaiveRandomGenomes is property P1's SA-construction half:
// a random genome's suffix array must match a naive, obviously-correct sort
// of all rotations.
func TestBuildAgainstNaiveRandomGenomes(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	bases := []byte("ACGT")
	for trial := 0; trial < 50; trial++ {
		n := 1 + r.Intn(300)
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = bases[r.Intn(4)]
		}
		sa := buildFromString(t, string(raw))
		want := naiveSuffixArray(string(raw))
		for i := range want {
			if sa[i] != want[i] {
				t.Fatalf("trial %d (genome %q): sa[%d] = %d, want %d", trial, raw, i, sa[i], want[i])
			}
		}
	}
}
