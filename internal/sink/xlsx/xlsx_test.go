package xlsx

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.FromColumns(
		table.NewText("Jugador", []string{"A", "B"}),
		table.NewNumber("1v1D+", table.Int, []float64{5, 0}),
		table.NewFloat("1v1D+ por 90 minutos", []float64{2.5, math.Inf(1)}, nil),
		table.NewFloat("Goles", []float64{1, 0}, []bool{true, false}),
	)
	require.NoError(t, err)
	return tb
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "salida.xlsx")
	require.NoError(t, WriteFile(path, "Resumen", sample(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Resumen"}, f.GetSheetList())
	rows, err := f.GetRows("Resumen")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Jugador", "1v1D+", "1v1D+ por 90 minutos", "Goles"},
		{"A", "5", "2.5", "1"},
		{"B", "0", "inf"},
	}, rows)

	typ, err := f.GetCellType("Resumen", "B2")
	require.NoError(t, err)
	require.NotEqual(t, excelize.CellTypeSharedString, typ, "numbers stay numeric")
}

func TestWriteFile_DefaultSheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "salida.xlsx")
	require.NoError(t, WriteFile(path, "", sample(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, []string{DefaultSheet}, f.GetSheetList())
}
