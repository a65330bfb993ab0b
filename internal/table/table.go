// Package table is the in-memory, column-oriented representation of a CSV
// file used by the aggregation pipeline.
//
// A Table is an ordered list of named columns of equal length. Columns are
// looked up by name with an explicit existence check; the pipeline decides
// per call site whether an absent column is fatal (Lookup) or tolerated
// (Column, Select).
package table

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn is matched by errors.Is for any *MissingColumnError.
	ErrMissingColumn = errors.New("missing column")

	// ErrNotNumeric reports arithmetic requested on a Text column.
	ErrNotNumeric = errors.New("column is not numeric")

	// ErrLength reports a column whose length differs from the table's.
	ErrLength = errors.New("column length mismatch")
)

// MissingColumnError names a column that a transform required but the table
// does not have.
type MissingColumnError struct {
	Name string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found", e.Name)
}

// Is makes errors.Is(err, ErrMissingColumn) true.
func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

// Table is an ordered set of columns sharing a row count. The same column
// name may appear more than once after Select; lookups resolve to the first.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New returns an empty table with the given row count.
func New(rows int) *Table {
	return &Table{index: map[string]int{}, rows: rows}
}

// FromColumns builds a table from cols. All columns must have equal length;
// a later column replaces an earlier one with the same name.
func FromColumns(cols ...*Column) (*Table, error) {
	rows := 0
	if len(cols) > 0 {
		rows = cols[0].Len()
	}
	t := New(rows)
	for _, c := range cols {
		if err := t.Set(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Rows returns the number of rows.
func (t *Table) Rows() int { return t.rows }

// Width returns the number of columns, duplicates included.
func (t *Table) Width() int { return len(t.cols) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name()
	}
	return out
}

// Columns returns the columns in order. The slice must not be modified.
func (t *Table) Columns() []*Column { return t.cols }

// Column returns the column called name and whether it exists.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Lookup returns the column called name or a *MissingColumnError.
func (t *Table) Lookup(name string) (*Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, &MissingColumnError{Name: name}
	}
	return c, nil
}

// Numeric returns the numeric column called name. It fails with a
// *MissingColumnError when absent and ErrNotNumeric for Text columns.
func (t *Table) Numeric(name string) (*Column, error) {
	c, err := t.Lookup(name)
	if err != nil {
		return nil, err
	}
	if !c.Numeric() {
		return nil, fmt.Errorf("%q: %w", name, ErrNotNumeric)
	}
	return c, nil
}

// Set replaces the column with the same name in place, or appends c when
// no such column exists.
func (t *Table) Set(c *Column) error {
	if c.Len() != t.rows {
		return fmt.Errorf("%q has %d rows, table has %d: %w", c.Name(), c.Len(), t.rows, ErrLength)
	}
	if i, ok := t.index[c.Name()]; ok {
		t.cols[i] = c
		return nil
	}
	t.index[c.Name()] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// Select returns a table holding the named columns in the given order.
// Names the table does not have are skipped; repeated names produce
// repeated columns.
func (t *Table) Select(names []string) *Table {
	out := New(t.rows)
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok {
			continue
		}
		if _, seen := out.index[n]; !seen {
			out.index[n] = len(out.cols)
		}
		out.cols = append(out.cols, c)
	}
	return out
}

// Present filters names down to the ones the table has, keeping order.
func (t *Table) Present(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if t.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// Clone returns a table sharing t's columns. Setting a column on the clone
// leaves t unchanged.
func (t *Table) Clone() *Table {
	out := &Table{
		cols:  append([]*Column(nil), t.cols...),
		index: make(map[string]int, len(t.index)),
		rows:  t.rows,
	}
	for k, v := range t.index {
		out.index[k] = v
	}
	return out
}
