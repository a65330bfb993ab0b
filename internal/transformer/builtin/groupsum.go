package builtin

import (
	"encoding/binary"
	"log"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// GroupSum collapses rows sharing the same Keys tuple into one row and sums
// the Sums columns over each group.
//
// Keys compare by value within their column's kind: numeric key columns
// compare numerically, text columns byte for byte. Rows with a missing key
// cell are not part of any group. Groups appear in the order their first
// row appears in the input.
//
// The output holds the key columns followed by the summed columns under
// their input names. Sum columns must be numeric; Int columns are summed in
// int64.
type GroupSum struct {
	Keys []string
	Sums []string
}

// Apply implements transformer.Transformer.
func (g GroupSum) Apply(in *table.Table) (*table.Table, error) {
	keys := make([]*table.Column, len(g.Keys))
	for i, name := range g.Keys {
		col, err := in.Lookup(name)
		if err != nil {
			return nil, err
		}
		keys[i] = col
	}
	sums := make([]*table.Column, len(g.Sums))
	for i, name := range g.Sums {
		col, err := in.Numeric(name)
		if err != nil {
			return nil, err
		}
		sums[i] = col
	}

	idx := newGroupIndex(in.Rows())
	groupOf := make([]int, in.Rows())
	skipped := 0
	var buf []byte
	for row := 0; row < in.Rows(); row++ {
		var ok bool
		buf, ok = encodeKey(buf[:0], keys, row)
		if !ok {
			groupOf[row] = -1
			skipped++
			continue
		}
		groupOf[row] = idx.find(buf, row)
	}
	if skipped > 0 {
		log.Printf("group: skipped %d rows with an empty key column", skipped)
	}

	n := len(idx.first)
	out := table.New(n)
	for _, kc := range keys {
		if err := out.Set(takeRows(kc, idx.first)); err != nil {
			return nil, err
		}
	}
	for _, sc := range sums {
		if err := out.Set(sumByGroup(sc, groupOf, n)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// sumByGroup sums c's cells into n groups. Rows in group -1 are ignored.
func sumByGroup(c *table.Column, groupOf []int, n int) *table.Column {
	if c.Kind() == table.Int {
		vals := make([]int64, n)
		for row, grp := range groupOf {
			if grp >= 0 {
				vals[grp] += c.Int(row)
			}
		}
		return table.NewInt(c.Name(), vals)
	}
	vals := make([]float64, n)
	for row, grp := range groupOf {
		if grp >= 0 {
			vals[grp] += c.Float(row)
		}
	}
	return table.NewNumber(c.Name(), table.Float, vals)
}

// encodeKey appends a type-tagged encoding of row's key cells to buf. It
// reports false when any key cell is missing.
func encodeKey(buf []byte, keys []*table.Column, row int) ([]byte, bool) {
	for _, c := range keys {
		if c.Missing(row) {
			return buf, false
		}
		switch c.Kind() {
		case table.Int:
			buf = append(buf, 'i')
			buf = binary.LittleEndian.AppendUint64(buf, uint64(c.Int(row)))
			continue
		case table.Float:
			v := c.Float(row)
			if v == 0 {
				v = 0 // fold -0 into +0
			}
			buf = append(buf, 'n')
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
			continue
		}
		s := c.Raw(row)
		buf = append(buf, 's')
		buf = binary.AppendUvarint(buf, uint64(len(s)))
		buf = append(buf, s...)
	}
	return buf, true
}

// groupIndex assigns dense group ids to encoded keys. Keys are bucketed by
// their xxh3 hash and compared in full on collision.
type groupIndex struct {
	buckets map[uint64][]int
	keys    []string
	first   []int // first input row of each group
}

func newGroupIndex(hint int) *groupIndex {
	return &groupIndex{buckets: make(map[uint64][]int, hint)}
}

// find returns the id of key's group, creating it with row as its first
// row when key is new.
func (x *groupIndex) find(key []byte, row int) int {
	h := xxh3.Hash(key)
	for _, id := range x.buckets[h] {
		if x.keys[id] == string(key) {
			return id
		}
	}
	id := len(x.keys)
	x.keys = append(x.keys, string(key))
	x.first = append(x.first, row)
	x.buckets[h] = append(x.buckets[h], id)
	return id
}

// takeRows returns a column holding c's cells at rows, in that order.
func takeRows(c *table.Column, rows []int) *table.Column {
	switch c.Kind() {
	case table.Text:
		cells := make([]string, len(rows))
		for i, r := range rows {
			cells[i] = c.Raw(r)
		}
		return table.NewText(c.Name(), cells)
	case table.Int:
		vals := make([]int64, len(rows))
		for i, r := range rows {
			vals[i] = c.Int(r)
		}
		return table.NewInt(c.Name(), vals)
	}
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = c.Float(r)
	}
	return table.NewNumber(c.Name(), table.Float, vals)
}
