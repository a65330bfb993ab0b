// Package csv reads a delimited text file into a table.Table.
//
// The whole file is materialized in memory; every column's kind is inferred
// once all rows have been read. Input may start with a byte-order mark:
// UTF-8 marks are stripped and UTF-16 input is transcoded to UTF-8. Other
// input must be valid UTF-8.
package csv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// ErrEmptyInput is returned when the input has no header row.
var ErrEmptyInput = errors.New("no columns to parse from input")

// Options configures the reader. The zero value reads comma-separated
// input.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune
}

// Parser reads CSV input according to Options. It holds no per-input state
// and may be reused.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	if opt.Comma == 0 {
		opt.Comma = ','
	}
	return &Parser{opt: opt}
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeInput strips a UTF-8 byte-order mark and transcodes UTF-16 input
// marked with one. Anything else is passed through unchanged so invalid
// UTF-8 reaches the field check instead of being replaced.
func decodeInput(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, _ := br.Peek(len(bomUTF8))
	switch {
	case bytes.HasPrefix(head, bomUTF8):
		_, _ = br.Discard(len(bomUTF8))
	case bytes.HasPrefix(head, bomUTF16LE), bytes.HasPrefix(head, bomUTF16BE):
		return transform.NewReader(br, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	}
	return br
}

// Parse reads all of r and returns it as a table. Rows shorter than the
// header are padded with empty cells; a longer row or a field that is not
// valid UTF-8 is an error naming its line.
func (p *Parser) Parse(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(decodeInput(r))
	cr.Comma = p.opt.Comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkUTF8(cr, header); err != nil {
		return nil, err
	}
	names := HeaderNames(header)

	cells := make([][]string, len(names))
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) > len(names) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", line, len(names), len(rec))
		}
		if err := checkUTF8(cr, rec); err != nil {
			return nil, err
		}
		for j := range names {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			cells[j] = append(cells[j], v)
		}
	}

	rows := 0
	if len(cells) > 0 {
		rows = len(cells[0])
	}
	t := table.New(rows)
	for j, name := range names {
		col := cells[j]
		if col == nil {
			col = []string{}
		}
		if err := t.Set(table.Infer(name, col)); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// checkUTF8 fails on the first field of the last read record that is not
// valid UTF-8.
func checkUTF8(cr *csv.Reader, rec []string) error {
	for j, v := range rec {
		if !utf8.ValidString(v) {
			line, _ := cr.FieldPos(j)
			return fmt.Errorf("line %d, field %d: %w", line, j+1, encoding.ErrInvalidUTF8)
		}
	}
	return nil
}

// HeaderNames normalizes raw header cells into unique column names: names
// are put in Unicode NFC, blanks become "Unnamed: <i>" and repeats get a
// ".1", ".2", ... suffix.
func HeaderNames(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	counts := make(map[string]int)
	for i, h := range header {
		name := norm.NFC.String(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for used[name] {
			counts[base]++
			name = base + "." + strconv.Itoa(counts[base])
		}
		used[name] = true
		out[i] = name
	}
	return out
}
