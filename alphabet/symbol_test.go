package alphabet_test

import (
	"testing"

	"github.com/LucasOJ/read-mapping/alphabet"
)

func TestSymbolString(t *testing.T) {
	cases := map[alphabet.Symbol]string{
		alphabet.A:        "A",
		alphabet.C:        "C",
		alphabet.G:        "G",
		alphabet.T:        "T",
		alphabet.Sentinel: "$",
	}
	for sym, want := range cases {
		if got := sym.String(); got != want {
			t.Errorf("Symbol(%d).String() = %q, want %q", sym, got, want)
		}
	}
}

func TestSymbolNumericIDs(t *testing.T) {
	// The wire format in package persist depends on these exact ids.
	if alphabet.A != 0 || alphabet.C != 1 || alphabet.G != 2 || alphabet.T != 3 || alphabet.Sentinel != 4 {
		t.Fatalf("symbol ids changed: A=%d C=%d G=%d T=%d Sentinel=%d",
			alphabet.A, alphabet.C, alphabet.G, alphabet.T, alphabet.Sentinel)
	}
}
