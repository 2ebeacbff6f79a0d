package fastq_test

import (
	"fmt"
	"strings"

	"github.com/LucasOJ/read-mapping/bio/fastq"
)

func ExampleParse() {
	input := "@read1\nACGTACGT\n+\nIIIIIIII\n"
	reads, err := fastq.Parse(strings.NewReader(input))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(reads[0].Identifier, reads[0].Sequence)
	// Output: read1 ACGTACGT
}

func ExampleFastq_Symbols() {
	read := fastq.Fastq{Sequence: "acgtN"}
	fmt.Println(read.Symbols())
	// Output: [A C G T $]
}
