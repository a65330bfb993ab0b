package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage"
)

const sampleConfig = `{
  "columnas_agrupacion": ["Jugador", "Rival", "DNI"],
  "columnas_a_sumar": {"Minutos Jugados": "Minutos Jugados", "1v1D+": "1v1D+"},
  "columnas_por_90": ["1v1D+"],
  "columnas_finales": ["Jugador", "Rival", "DNI", "Minutos Jugados", "1v1D+", "PERDIDAS", "Goles"]
}`

const sampleInput = "Jugador,Rival,DNI,Minutos Jugados,1v1D+,PERDIDAS: xControl,PERDIDAS: xGambeta,PERDIDAS: xPase\n" +
	"A,X,10,90,3,1,0,0\n" +
	"B,X,7,0,0,0,0,0\n" +
	"A,X,10,90,2,0,1,1\n"

type fixture struct {
	dir    string
	config string
	input  string
	output string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newFixture(t *testing.T, cfg, input string) *fixture {
	t.Helper()
	dir := t.TempDir()
	f := &fixture{
		dir:    dir,
		config: filepath.Join(dir, "config.json"),
		input:  filepath.Join(dir, "entrada.csv"),
		output: filepath.Join(dir, "salida.csv"),
	}
	require.NoError(t, os.WriteFile(f.config, []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(f.input, []byte(input), 0o644))
	return f
}

func (f *fixture) run() error {
	return run(context.Background(), options{
		configPath: f.config,
		input:      f.input,
		output:     f.output,
		stdout:     &f.stdout,
		stderr:     &f.stderr,
	})
}

func TestParseArgs(t *testing.T) {
	t.Parallel()

	_, _, ok := parseArgs(nil)
	require.False(t, ok)
	_, _, ok = parseArgs([]string{"entrada.csv"})
	require.False(t, ok)

	in, out, ok := parseArgs([]string{"entrada.csv", "salida.csv", "extra"})
	require.True(t, ok)
	require.Equal(t, "entrada.csv", in)
	require.Equal(t, "salida.csv", out)
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleConfig, sampleInput)
	require.NoError(t, f.run())

	require.Equal(t, "Archivo transformado y guardado en: "+f.output+"\n", f.stdout.String())

	got, err := os.ReadFile(f.output)
	require.NoError(t, err)
	require.Equal(t, "\ufeff"+
		"Jugador,Rival,DNI,Minutos Jugados,1v1D+,PERDIDAS,1v1D+ por 90 minutos\n"+
		"A,X,10,180.0,5,3,2.5\n"+
		"B,X,7,1e-05,0,0,0.0\n", string(got))
}

func TestRun_SemicolonInput(t *testing.T) {
	t.Parallel()

	cfg := strings.Replace(sampleConfig, "{\n", "{\n  \"input\": {\"comma\": \";\"},\n", 1)
	f := newFixture(t, cfg, strings.ReplaceAll(sampleInput, ",", ";"))
	require.NoError(t, f.run())

	got, err := os.ReadFile(f.output)
	require.NoError(t, err)
	require.Contains(t, string(got), "A,X,10,180.0,5,3,2.5\n")
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	f := newFixture(t, `{
  "columnas_agrupacion": [],
  "columnas_a_sumar": {},
  "columnas_por_90": [],
  "columnas_finales": []
}`, sampleInput)

	err := f.run()
	require.ErrorIs(t, err, errInvalidConfig)
	require.Contains(t, f.stderr.String(), "error: columnas_agrupacion:")
	require.Empty(t, f.stdout.String())
	require.NoFileExists(t, f.output)
}

func TestRun_MissingKey(t *testing.T) {
	t.Parallel()

	f := newFixture(t, `{"columnas_agrupacion": ["Jugador"]}`, sampleInput)
	require.ErrorContains(t, f.run(), "missing required key")
}

func TestRun_MissingConfigFile(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleConfig, sampleInput)
	require.NoError(t, os.Remove(f.config))
	require.ErrorIs(t, f.run(), os.ErrNotExist)
}

func TestRun_MissingInput(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleConfig, sampleInput)
	require.NoError(t, os.Remove(f.input))

	err := f.run()
	require.ErrorIs(t, err, os.ErrNotExist)
	require.NoFileExists(t, f.output)
}

func TestRun_MissingColumnLeavesNoOutput(t *testing.T) {
	t.Parallel()

	f := newFixture(t, sampleConfig, "Jugador,Rival,DNI,Minutos Jugados,1v1D+\nA,X,10,90,3\n")
	err := f.run()
	require.ErrorContains(t, err, `column "PERDIDAS: xControl" not found`)
	require.NoFileExists(t, f.output)
	require.Empty(t, f.stdout.String())
}

func TestRun_XLSXExport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "salida.xlsx")
	cfg := strings.Replace(sampleConfig, "{\n",
		"{\n  \"export\": {\"xlsx\": \""+filepath.ToSlash(xlsxPath)+"\", \"sheet\": \"Resumen\"},\n", 1)
	f := newFixture(t, cfg, sampleInput)
	require.NoError(t, f.run())

	x, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	defer x.Close()
	rows, err := x.GetRows("Resumen")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "1v1D+ por 90 minutos", rows[0][6])
	require.Equal(t, "2.5", rows[1][6])
}

func TestRun_SQLiteStorage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "informe.db")
	cfg := strings.Replace(sampleConfig, "{\n",
		"{\n  \"storage\": {\"kind\": \"sqlite\", \"dsn\": \""+filepath.ToSlash(dbPath)+"\", \"table\": \"partidos\", \"auto_create_table\": true, \"batch_size\": 1},\n", 1)
	f := newFixture(t, cfg, sampleInput)
	require.NoError(t, f.run())

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer db.Close()

	var (
		count int
		sum   float64
	)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*), SUM("1v1D+") FROM "partidos"`).Scan(&count, &sum))
	require.Equal(t, 2, count)
	require.Equal(t, 5.0, sum)
}

type failingRepo struct{}

func (failingRepo) CopyFrom(context.Context, []string, [][]any) (int64, error) {
	return 0, errors.New("copy refused")
}
func (failingRepo) Exec(context.Context, string) error { return nil }
func (failingRepo) Close()                             {}

func TestRun_StorageError(t *testing.T) {
	old := newRepositoryFn
	t.Cleanup(func() { newRepositoryFn = old })
	newRepositoryFn = func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		require.Equal(t, "postgres", cfg.Kind)
		return failingRepo{}, nil
	}

	cfg := strings.Replace(sampleConfig, "{\n",
		"{\n  \"storage\": {\"kind\": \"postgres\", \"dsn\": \"postgres://localhost/informe\", \"table\": \"public.partidos\"},\n", 1)
	f := newFixture(t, cfg, sampleInput)

	err := f.run()
	require.ErrorContains(t, err, "copy refused")
	require.Empty(t, f.stdout.String())
}
