package builtin

import (
	"log"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// ZeroGuard replaces exact zeros in Column with Epsilon so the column can be
// used as a divisor. Other columns are untouched. The column turns Float
// when a replacement happens.
type ZeroGuard struct {
	Column  string
	Epsilon float64
}

// Apply implements transformer.Transformer.
func (z ZeroGuard) Apply(in *table.Table) (*table.Table, error) {
	col, err := in.Numeric(z.Column)
	if err != nil {
		return nil, err
	}
	vals := make([]float64, col.Len())
	replaced := false
	for i := range vals {
		v := col.Float(i)
		if v == 0 && !col.Missing(i) {
			v = z.Epsilon
			replaced = true
		}
		vals[i] = v
	}
	if !replaced {
		return in, nil
	}
	out := in.Clone()
	if err := out.Set(table.NewNumber(z.Column, table.Float, vals)); err != nil {
		return nil, err
	}
	return out, nil
}

// PerMinutes adds, for each of Columns, a column named col+Suffix holding
// col / Minutes * Scale. Every listed column must exist and be numeric.
// Minutes is expected to be zero-guarded already.
type PerMinutes struct {
	Columns []string
	Minutes string
	Scale   float64
	Suffix  string
}

// Apply implements transformer.Transformer.
func (p PerMinutes) Apply(in *table.Table) (*table.Table, error) {
	minutes, err := in.Numeric(p.Minutes)
	if err != nil {
		return nil, err
	}
	out := in.Clone()
	for _, name := range p.Columns {
		// Read from out so a rate of an earlier rate column sees it.
		col, err := out.Numeric(name)
		if err != nil {
			return nil, err
		}
		vals := make([]float64, col.Len())
		valid := make([]bool, col.Len())
		anyMissing := false
		for i := range vals {
			if col.Missing(i) || minutes.Missing(i) {
				anyMissing = true
				continue
			}
			vals[i] = col.Float(i) / minutes.Float(i) * p.Scale
			valid[i] = true
		}
		if !anyMissing {
			valid = nil
		}
		if err := out.Set(table.NewFloat(name+p.Suffix, vals, valid)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Project keeps the named columns in order, dropping names the table does
// not have. Dropped names are logged.
type Project struct {
	Columns []string
}

// Apply implements transformer.Transformer.
func (p Project) Apply(in *table.Table) (*table.Table, error) {
	kept := in.Present(p.Columns)
	if dropped := len(p.Columns) - len(kept); dropped > 0 {
		log.Printf("select: dropped %d of %d requested columns not in the table", dropped, len(p.Columns))
	}
	return in.Select(kept), nil
}
