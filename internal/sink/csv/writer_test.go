package csv

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.FromColumns(
		table.NewText("Jugador", []string{"Pérez, J.", "B"}),
		table.NewNumber("Minutos Jugados", table.Float, []float64{180, 1e-5}),
		table.NewNumber("1v1D+", table.Int, []float64{5, 0}),
		table.NewFloat("x por 90 minutos", []float64{2.5, 0}, []bool{true, false}),
	)
	require.NoError(t, err)
	return tb
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample(t)))

	want := "\ufeffJugador,Minutos Jugados,1v1D+,x por 90 minutos\n" +
		"\"Pérez, J.\",180.0,5,2.5\n" +
		"B,1e-05,0,\n"
	require.Equal(t, want, buf.String())
}

func TestWrite_DuplicateColumns(t *testing.T) {
	t.Parallel()

	tb := sample(t).Select([]string{"1v1D+", "Jugador", "1v1D+"})
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tb))
	require.Equal(t, "\ufeff1v1D+,Jugador,1v1D+\n5,\"Pérez, J.\",5\n0,B,0\n", buf.String())
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "salida.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteFile(path, sample(t)))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(got, []byte("\xef\xbb\xbfJugador,")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary file is left behind")
}

func TestWriteFile_MissingDir(t *testing.T) {
	t.Parallel()

	err := WriteFile(filepath.Join(t.TempDir(), "nope", "salida.csv"), sample(t))
	require.ErrorContains(t, err, "create output")
}
