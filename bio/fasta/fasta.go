/*
Package fasta parses FASTA-formatted sequence files: records beginning
with a '>' identifier line followed by one or more sequence lines.
*/
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/LucasOJ/read-mapping/alphabet"
)

// defaultMaxLineSize bounds a single scanned line; genome FASTA files are
// typically wrapped at 60-80 columns, but some dumps keep a whole
// chromosome on one line, so this is generous rather than tight.
const defaultMaxLineSize = 1 << 20

// LoadGenome reads every record in r, concatenates their sequences in
// order with no separator between records (record boundaries are not
// retained), and packs the result into an alphabet.PackedSequence. It
// fails with alphabet.ErrInvalidAlphabet on the first non-ACGT base,
// case-insensitively.
func LoadGenome(r io.Reader) (alphabet.PackedSequence, error) {
	parser := NewParser(r, defaultMaxLineSize)

	var buf bytes.Buffer
	for {
		record, err := parser.Next()
		if record != nil && record.Sequence != "" {
			buf.WriteString(record.Sequence)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return alphabet.PackedSequence{}, err
		}
	}

	return alphabet.FromBytes(bytes.Join(bytes.Fields(buf.Bytes()), nil))
}

// Record is a single parsed FASTA entry: its identifier line (without the
// leading '>') and its sequence, concatenated across all of that record's
// sequence lines.
type Record struct {
	Identifier string
	Sequence   string
}

// Parser reads FASTA records from an underlying reader one at a time. Scan
// state (the identifier and accumulated sequence of the record currently
// being read) is kept across calls to Next.
type Parser struct {
	scanner    bufio.Scanner
	buff       bytes.Buffer
	identifier string
	start      bool
	more       bool
	line       uint
}

// NewParser returns a Parser reading from r, bounding any single line to
// maxLineSize bytes.
func NewParser(r io.Reader, maxLineSize int) *Parser {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, maxLineSize), maxLineSize)
	return &Parser{scanner: *scanner, start: true, more: true}
}

// Next returns the next record. Blank lines and ';' comment lines between
// records are skipped. The final record is returned with a nil error once
// the reader is exhausted; every call after that returns an empty record
// and io.EOF.
func (p *Parser) Next() (*Record, error) {
	if !p.more {
		return &Record{}, io.EOF
	}
	for p.scanner.Scan() {
		line := p.scanner.Bytes()
		if p.scanner.Err() != nil {
			break
		}
		p.line++
		switch {
		case len(line) == 0:
			continue
		case line[0] == ';':
			continue
		case line[0] != '>' && p.start:
			err := fmt.Errorf("invalid input: missing sequence identifier for sequence starting at line %d", p.line)
			record, _ := p.newRecord()
			return &record, err
		case line[0] != '>':
			p.buff.Write(line)
		case !p.start:
			record, err := p.newRecord()
			p.identifier = string(line[1:])
			return &record, err
		default:
			p.identifier = string(line[1:])
			p.start = false
		}
	}
	p.more = false
	record, err := p.newRecord()
	if err != nil {
		return &record, err
	}
	return &record, nil
}

func (p *Parser) newRecord() (Record, error) {
	sequence := p.buff.String()
	if sequence == "" {
		return Record{}, fmt.Errorf("%s has no sequence", p.identifier)
	}
	record := Record{Identifier: p.identifier, Sequence: sequence}
	p.buff.Reset()
	return record, nil
}
