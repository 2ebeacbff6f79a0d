package persist_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/LucasOJ/read-mapping/alphabet"
	"github.com/LucasOJ/read-mapping/mapper"
	"github.com/LucasOJ/read-mapping/persist"
)

func Example() {
	seq, _ := alphabet.FromBytes([]byte("ACGTACGT"))
	idx, _ := mapper.New(seq, 4, 4)

	dir, err := os.MkdirTemp("", "readmap")
	if err != nil {
		fmt.Println(err)
		return
	}
	path := filepath.Join(dir, "genome.idx")

	if err := persist.Save(idx, path); err != nil {
		fmt.Println(err)
		return
	}

	loaded, err := persist.Load(path)
	if err != nil {
		fmt.Println(err)
		return
	}

	result, _ := loaded.MapRead(symbols("GTAC"), 4, 1)
	fmt.Println(result.Hit, result.Position, result.MatchedLength)
	// Output: true 2 4
}
