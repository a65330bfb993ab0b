package table

import (
	"strconv"
	"strings"
)

// Kind is the value type of a Column.
type Kind int

const (
	// Text holds raw cell strings.
	Text Kind = iota
	// Int holds 64-bit whole numbers. Int columns have no missing cells.
	Int
	// Float holds real numbers and may contain missing cells.
	Float
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	default:
		return "text"
	}
}

// naValues are the cell spellings read as a missing value, matching what
// spreadsheet and dataframe tooling emits for empty cells.
var naValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNA reports whether s spells a missing value.
func IsNA(s string) bool {
	_, ok := naValues[s]
	return ok
}

// ParseInt parses s as a base-10 integer literal. Surrounding spaces are
// ignored.
func ParseInt(s string) (int64, bool) {
	i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return i, err == nil
}

// ParseNumber parses s as a number. The second result reports whether s is
// an integer literal. Surrounding spaces are ignored.
func ParseNumber(s string) (v float64, integral bool, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, false
	}
	if i, ok := ParseInt(s); ok {
		return float64(i), true, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, false
	}
	return f, false, true
}

// Column is a named, typed sequence of cells. Columns are immutable once
// built; transforms produce new columns instead of editing in place.
type Column struct {
	name  string
	kind  Kind
	text  []string
	ints  []int64
	nums  []float64
	valid []bool // nil means every cell is present
}

// NewText returns a Text column over cells. Cells spelling a missing value
// (see IsNA) are marked missing.
func NewText(name string, cells []string) *Column {
	c := &Column{name: name, kind: Text, text: cells}
	for i, s := range cells {
		if IsNA(s) {
			if c.valid == nil {
				c.valid = allTrue(len(cells))
			}
			c.valid[i] = false
		}
	}
	return c
}

// NewInt returns an Int column over vals.
func NewInt(name string, vals []int64) *Column {
	return &Column{name: name, kind: Int, ints: vals}
}

// NewNumber returns an Int or Float column with every cell present. Int
// values are truncated toward zero.
func NewNumber(name string, kind Kind, vals []float64) *Column {
	if kind != Int {
		return &Column{name: name, kind: Float, nums: vals}
	}
	ints := make([]int64, len(vals))
	for i, v := range vals {
		ints[i] = int64(v)
	}
	return NewInt(name, ints)
}

// NewFloat returns a Float column. valid may be nil when no cell is missing.
func NewFloat(name string, vals []float64, valid []bool) *Column {
	return &Column{name: name, kind: Float, nums: vals, valid: valid}
}

// Infer builds a column from raw cells, picking the narrowest kind that
// holds every cell: Int when all cells are integers, Float when every
// present cell is a number, Text otherwise.
func Infer(name string, cells []string) *Column {
	if len(cells) == 0 {
		return NewText(name, cells)
	}
	if ints, ok := inferInts(cells); ok {
		return NewInt(name, ints)
	}
	var (
		nums     = make([]float64, len(cells))
		valid    []bool
		isNumber = true
	)
	for i, s := range cells {
		if IsNA(strings.TrimSpace(s)) {
			if valid == nil {
				valid = allTrue(len(cells))
			}
			valid[i] = false
			continue
		}
		v, _, ok := ParseNumber(s)
		if !ok {
			isNumber = false
			break
		}
		nums[i] = v
	}
	if !isNumber {
		return NewText(name, cells)
	}
	return NewFloat(name, nums, valid)
}

// inferInts parses every cell as an integer, failing on the first cell
// that is not one.
func inferInts(cells []string) ([]int64, bool) {
	ints := make([]int64, len(cells))
	for i, s := range cells {
		v, ok := ParseInt(s)
		if !ok {
			return nil, false
		}
		ints[i] = v
	}
	return ints, true
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Kind returns the column kind.
func (c *Column) Kind() Kind { return c.kind }

// Numeric reports whether the column holds numbers.
func (c *Column) Numeric() bool { return c.kind != Text }

// Len returns the number of cells.
func (c *Column) Len() int {
	switch c.kind {
	case Text:
		return len(c.text)
	case Int:
		return len(c.ints)
	}
	return len(c.nums)
}

// Missing reports whether cell i holds no value.
func (c *Column) Missing(i int) bool {
	return c.valid != nil && !c.valid[i]
}

// Float returns cell i of a numeric column. It returns 0 for Text columns
// and missing cells.
func (c *Column) Float(i int) float64 {
	switch {
	case c.kind == Text || c.Missing(i):
		return 0
	case c.kind == Int:
		return float64(c.ints[i])
	}
	return c.nums[i]
}

// Int returns cell i of an Int column exactly. Float cells are truncated
// toward zero; Text and missing cells read as 0.
func (c *Column) Int(i int) int64 {
	switch {
	case c.kind == Text || c.Missing(i):
		return 0
	case c.kind == Int:
		return c.ints[i]
	}
	return int64(c.nums[i])
}

// Raw returns cell i of a Text column as read.
func (c *Column) Raw(i int) string {
	if c.kind != Text {
		return c.String(i)
	}
	return c.text[i]
}

// String formats cell i for text output. Missing cells format as "".
func (c *Column) String(i int) string {
	if c.Missing(i) {
		return ""
	}
	switch c.kind {
	case Int:
		return strconv.FormatInt(c.ints[i], 10)
	case Float:
		return FormatFloat(c.nums[i])
	default:
		return c.text[i]
	}
}

// Value returns cell i as a Go value suitable for database drivers and
// spreadsheet writers: string, int64, float64 or nil when missing.
func (c *Column) Value(i int) any {
	if c.Missing(i) {
		return nil
	}
	switch c.kind {
	case Int:
		return c.ints[i]
	case Float:
		return c.nums[i]
	default:
		return c.text[i]
	}
}

// Renamed returns a copy of c under a new name. Cell storage is shared.
func (c *Column) Renamed(name string) *Column {
	cp := *c
	cp.name = name
	return &cp
}

func allTrue(n int) []bool {
	b := make([]bool, n)
	for i := range b {
		b[i] = true
	}
	return b
}
