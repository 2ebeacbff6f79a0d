/*
Package fastq parses FASTQ-formatted read streams: 4-line records of an
identifier line, a sequence line, a separator line, and a quality line.
Quality is retained but never consulted by the mapper; spec.md's aligner
core only needs the identifier and the decoded sequence.
*/
package fastq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/LucasOJ/read-mapping/alphabet"
)

// Fastq is a single parsed record: an identifier, its sequence, and the
// accompanying quality string.
type Fastq struct {
	Identifier string
	Sequence   string
	Quality    string
}

// Symbols decodes the record's sequence into mapper input, case-insensitively.
// Any byte outside {A,C,G,T} decodes to the sentinel symbol, which never
// appears at a real read position and so can never equal a genuine genome
// base — exactly the "non-ACGT bases treated as mismatches" read contract.
func (fastq *Fastq) Symbols() []alphabet.Symbol {
	out := make([]alphabet.Symbol, len(fastq.Sequence))
	for i := 0; i < len(fastq.Sequence); i++ {
		switch fastq.Sequence[i] {
		case 'A', 'a':
			out[i] = alphabet.A
		case 'C', 'c':
			out[i] = alphabet.C
		case 'G', 'g':
			out[i] = alphabet.G
		case 'T', 't':
			out[i] = alphabet.T
		default:
			out[i] = alphabet.Sentinel
		}
	}
	return out
}

// Parse reads every record from r.
func Parse(r io.Reader) ([]Fastq, error) {
	const maxLineSize = 2 * 32 * 1024
	parser := NewParser(r, maxLineSize)
	return parser.ParseAll()
}

// Parser reads FASTQ records from an underlying reader one at a time.
type Parser struct {
	reader bufio.Reader
	line   uint
}

// NewParser returns a Parser reading from r, bounding any single line to
// maxLineSize bytes.
func NewParser(r io.Reader, maxLineSize int) *Parser {
	return &Parser{reader: *bufio.NewReaderSize(r, maxLineSize)}
}

// ParseAll reads every remaining record, stopping at EOF without treating
// it as an error.
func (parser *Parser) ParseAll() ([]Fastq, error) {
	return parser.ParseN(math.MaxInt)
}

// ParseN reads up to maxRecords records, returning everything parsed so far
// if it stops early on a non-EOF error.
func (parser *Parser) ParseN(maxRecords int) (records []Fastq, err error) {
	for i := 0; i < maxRecords; i++ {
		record, err := parser.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			return records, err
		}
		records = append(records, record)
	}
	return records, nil
}

// ParseNext reads one 4-line record. It fails if the identifier line does
// not start with '@', if the sequence or quality lines are missing, or if
// the reader runs out mid-record.
func (parser *Parser) ParseNext() (Fastq, error) {
	if _, err := parser.reader.Peek(1); err != nil {
		return Fastq{}, err
	}

	readLine := func() (string, error) {
		raw, err := parser.reader.ReadSlice('\n')
		parser.line++
		if err != nil {
			if errors.Is(err, bufio.ErrBufferFull) {
				return "", fmt.Errorf("line %d too large for buffer, use a larger maxLineSize: %w", parser.line, err)
			}
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("line %d: unexpected EOF mid-record", parser.line)
			}
			return "", err
		}
		return string(raw[:len(raw)-1]), nil
	}

	idLine, err := readLine()
	if err != nil {
		return Fastq{}, err
	}
	if !strings.HasPrefix(idLine, "@") {
		return Fastq{}, fmt.Errorf("line %d: identifier line does not start with '@'", parser.line)
	}
	identifier, _, _ := strings.Cut(idLine[1:], " ")

	sequence, err := readLine()
	if err != nil {
		return Fastq{}, err
	}
	if sequence == "" {
		return Fastq{}, fmt.Errorf("line %d: empty sequence for %q", parser.line, identifier)
	}

	if _, err := readLine(); err != nil {
		return Fastq{}, err
	}

	quality, err := readLine()
	if err != nil {
		return Fastq{}, err
	}
	if quality == "" {
		return Fastq{}, fmt.Errorf("line %d: empty quality for %q", parser.line, identifier)
	}

	return Fastq{Identifier: identifier, Sequence: sequence, Quality: quality}, nil
}

// Reset discards buffered state and starts reading from r.
func (parser *Parser) Reset(r io.Reader) {
	parser.reader.Reset(r)
	parser.line = 0
}
