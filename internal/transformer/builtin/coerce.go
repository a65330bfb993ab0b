// Package builtin contains the table transforms used by the report.
package builtin

import (
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// ParseOrZero parses s as a number. Anything that is not a number,
// including empty and missing-value spellings, yields 0. The second result
// reports whether s was an integer literal.
func ParseOrZero(s string) (float64, bool) {
	if table.IsNA(s) {
		return 0, false
	}
	v, integral, ok := table.ParseNumber(s)
	if !ok {
		return 0, false
	}
	return v, integral
}

// Coerce converts the named columns to numbers. Unparsable or missing cells
// become 0; the result is Int when every cell was an integer and Float
// otherwise. Each column is converted independently. A named column that
// does not exist is an error.
type Coerce struct {
	Columns []string
}

// Apply implements transformer.Transformer.
func (c Coerce) Apply(in *table.Table) (*table.Table, error) {
	out := in.Clone()
	for _, name := range c.Columns {
		col, err := in.Lookup(name)
		if err != nil {
			return nil, err
		}
		if err := out.Set(ToNumber(col)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ToNumber returns col as a numeric column with no missing cells.
func ToNumber(col *table.Column) *table.Column {
	n := col.Len()
	switch col.Kind() {
	case table.Int:
		return col
	case table.Float:
		vals := make([]float64, n)
		for i := range vals {
			vals[i] = col.Float(i) // missing reads as 0
		}
		return table.NewNumber(col.Name(), table.Float, vals)
	}

	if ints, ok := textInts(col); ok {
		return table.NewInt(col.Name(), ints)
	}
	vals := make([]float64, n)
	for i := range vals {
		if !col.Missing(i) {
			vals[i], _ = ParseOrZero(col.Raw(i))
		}
	}
	return table.NewNumber(col.Name(), table.Float, vals)
}

// textInts parses every cell of a Text column as an integer. It fails on a
// missing cell or any cell that is not an integer literal.
func textInts(col *table.Column) ([]int64, bool) {
	ints := make([]int64, col.Len())
	for i := range ints {
		if col.Missing(i) {
			return nil, false
		}
		v, ok := table.ParseInt(col.Raw(i))
		if !ok {
			return nil, false
		}
		ints[i] = v
	}
	return ints, true
}
