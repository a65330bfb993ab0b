package builtin

import (
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// SumColumns adds a column holding the row-wise sum of Inputs. Every input
// must be numeric. The result is Int, summed in int64, when every input is
// Int.
type SumColumns struct {
	Output string
	Inputs []string
}

// Apply implements transformer.Transformer.
func (s SumColumns) Apply(in *table.Table) (*table.Table, error) {
	cols := make([]*table.Column, len(s.Inputs))
	allInt := true
	for i, name := range s.Inputs {
		col, err := in.Numeric(name)
		if err != nil {
			return nil, err
		}
		if col.Kind() != table.Int {
			allInt = false
		}
		cols[i] = col
	}

	var sum *table.Column
	if allInt {
		vals := make([]int64, in.Rows())
		for _, col := range cols {
			for i := range vals {
				vals[i] += col.Int(i)
			}
		}
		sum = table.NewInt(s.Output, vals)
	} else {
		vals := make([]float64, in.Rows())
		for _, col := range cols {
			for i := range vals {
				vals[i] += col.Float(i)
			}
		}
		sum = table.NewNumber(s.Output, table.Float, vals)
	}

	out := in.Clone()
	if err := out.Set(sum); err != nil {
		return nil, err
	}
	return out, nil
}
