package alphabet_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/LucasOJ/read-mapping/alphabet"
)

func TestFromBytesRoundTrip(t *testing.T) {
	cases := []string{"", "A", "acgt", "ACGTACGTACGT", "gattaca"}
	for _, c := range cases {
		seq, err := alphabet.FromBytes([]byte(c))
		if err != nil {
			t.Fatalf("FromBytes(%q): unexpected error: %v", c, err)
		}
		if seq.Len() != len(c) {
			t.Fatalf("FromBytes(%q).Len() = %d, want %d", c, seq.Len(), len(c))
		}
		want := string(bytes.ToUpper([]byte(c)))
		if got := string(seq.Bytes()); got != want {
			t.Fatalf("FromBytes(%q).Bytes() = %q, want %q", c, got, want)
		}
	}
}

func TestFromBytesInvalidAlphabet(t *testing.T) {
	for _, bad := range []string{"N", "ACGTN", "ACGX", "-"} {
		if _, err := alphabet.FromBytes([]byte(bad)); err != alphabet.ErrInvalidAlphabet {
			t.Errorf("FromBytes(%q) error = %v, want ErrInvalidAlphabet", bad, err)
		}
	}
}

func TestGetMatchesSourceBytes(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	bases := []byte("ACGT")
	for trial := 0; trial < 20; trial++ {
		n := r.Intn(500)
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = bases[r.Intn(4)]
		}
		seq, err := alphabet.FromBytes(raw)
		if err != nil {
			t.Fatalf("FromBytes: %v", err)
		}
		for i := 0; i < n; i++ {
			want, _ := byteToSymbolForTest(raw[i])
			if seq.Get(i) != want {
				t.Fatalf("Get(%d) = %v, want %v (source byte %q)", i, seq.Get(i), want, raw[i])
			}
		}
	}
}

func byteToSymbolForTest(b byte) (alphabet.Symbol, bool) {
	switch b {
	case 'A':
		return alphabet.A, true
	case 'C':
		return alphabet.C, true
	case 'G':
		return alphabet.G, true
	case 'T':
		return alphabet.T, true
	}
	return 0, false
}

func TestReverse(t *testing.T) {
	seq, err := alphabet.FromBytes([]byte("ACGT"))
	if err != nil {
		t.Fatal(err)
	}
	rev := seq.Reverse()
	if string(rev.Bytes()) != "TGCA" {
		t.Fatalf("Reverse() = %q, want %q", rev.Bytes(), "TGCA")
	}
}

func TestIter(t *testing.T) {
	seq, _ := alphabet.FromBytes([]byte("ACGT"))
	want := []alphabet.Symbol{alphabet.A, alphabet.C, alphabet.G, alphabet.T}
	got := seq.Iter()
	if len(got) != len(want) {
		t.Fatalf("Iter() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Iter()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
