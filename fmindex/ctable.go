package fmindex

import "github.com/LucasOJ/read-mapping/alphabet"

// cTable holds, for each symbol, the count of BWT rows whose first column
// symbol sorts strictly less than it ($  <  A < C < G < T).
type cTable [5]int

func buildCTable(bwt rleBwt) cTable {
	var totals [5]int
	for sigma := 0; sigma < 5; sigma++ {
		totals[sigma] = bwt.total(alphabet.Symbol(sigma))
	}

	var c cTable
	cumulative := 0
	for _, sigma := range symbolOrder {
		c[sigma] = cumulative
		cumulative += totals[sigma]
	}
	return c
}

// symbolOrder lists symbols in C-table order: sentinel first, then the
// nucleotides in their natural ascending order.
var symbolOrder = [5]alphabet.Symbol{alphabet.Sentinel, alphabet.A, alphabet.C, alphabet.G, alphabet.T}
