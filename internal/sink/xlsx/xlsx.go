// Package xlsx exports a table.Table as a single-sheet Excel workbook.
package xlsx

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// DefaultSheet is the worksheet name used when none is given.
const DefaultSheet = "Sheet1"

// WriteFile writes t to a new workbook at path. The header goes in row 1;
// numbers are stored as numbers and missing cells are left blank.
func WriteFile(path, sheet string, t *table.Table) error {
	if sheet == "" {
		sheet = DefaultSheet
	}
	f := excelize.NewFile()
	defer f.Close()

	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			return fmt.Errorf("xlsx: sheet name: %w", err)
		}
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("xlsx: %w", err)
	}

	names := t.Names()
	header := make([]any, len(names))
	for i, n := range names {
		header[i] = n
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("xlsx: header: %w", err)
	}

	cols := t.Columns()
	for i := 0; i < t.Rows(); i++ {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = cellValue(c, i)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("xlsx: %w", err)
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", i+1, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx: flush: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save: %w", err)
	}
	return nil
}

// cellValue returns the value excelize stores for cell i. Non-finite floats
// have no numeric cell form and are written as text.
func cellValue(c *table.Column, i int) any {
	v := c.Value(i)
	if f, ok := v.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return c.String(i)
	}
	return v
}
