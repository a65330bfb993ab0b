package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

func reportTable(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.FromColumns(
		table.NewText("Jugador", []string{"A", "B", "C"}),
		table.NewNumber("Minutos Jugados", table.Int, []float64{180, 90, 0}),
		table.NewFloat("1v1D+ por 90 minutos", []float64{2.5, 1, 0}, []bool{true, true, false}),
	)
	require.NoError(t, err)
	return tb
}

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateTableSQL(storage.TableDefOf("main.partidos", reportTable(t)))
	require.NoError(t, err)
	require.Equal(t, "CREATE TABLE IF NOT EXISTS \"main\".\"partidos\" (\n"+
		"  \"Jugador\" TEXT,\n"+
		"  \"Minutos Jugados\" INTEGER,\n"+
		"  \"1v1D+ por 90 minutos\" REAL\n"+
		");", got)

	_, err = BuildCreateTableSQL(storage.TableDef{})
	require.Error(t, err)
	_, err = BuildCreateTableSQL(storage.TableDef{FQN: "t"})
	require.Error(t, err)
}

func TestInsertSQL(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		`INSERT INTO "partidos" ("Jugador", "PERDIDAS: xPase") VALUES (?, ?)`,
		insertSQL("partidos", []string{"Jugador", "PERDIDAS: xPase"}))
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo, err := storage.New(ctx, storage.Config{Kind: "sqlite", DSN: ":memory:", Table: "partidos"})
	require.NoError(t, err)
	defer repo.Close()

	tb := reportTable(t)
	require.NoError(t, storage.EnsureTable(ctx, "sqlite", repo, storage.TableDefOf("partidos", tb)))
	// Idempotent.
	require.NoError(t, storage.EnsureTable(ctx, "sqlite", repo, storage.TableDefOf("partidos", tb)))

	n, err := storage.Load(ctx, tb, 2, repo.CopyFrom)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	db := repo.(*wrappedRepo).db
	var (
		count int
		sum   float64
		nulls int
	)
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM("Minutos Jugados"), SUM("1v1D+ por 90 minutos" IS NULL) FROM "partidos"`,
	).Scan(&count, &sum, &nulls))
	require.Equal(t, 3, count)
	require.Equal(t, 270.0, sum)
	require.Equal(t, 1, nulls)
}

func TestCopyFrom_RowLength(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	r, closeFn, err := NewRepository(ctx, Config{DSN: ":memory:", Table: "t"})
	require.NoError(t, err)
	defer closeFn()
	require.NoError(t, r.Exec(ctx, `CREATE TABLE "t" ("a" INTEGER, "b" INTEGER)`))

	_, err = r.CopyFrom(ctx, []string{"a", "b"}, [][]any{{1}})
	require.ErrorContains(t, err, "row length 1 != columns length 2")

	n, err := r.CopyFrom(ctx, []string{"a", "b"}, nil)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestNewRepository_EmptyDSN(t *testing.T) {
	t.Parallel()

	_, _, err := NewRepository(context.Background(), Config{})
	require.ErrorContains(t, err, "DSN must not be empty")
}

func TestRegistration_UsesNewRepositoryHook(t *testing.T) {
	old := newRepository
	t.Cleanup(func() { newRepository = old })

	var got Config
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		got = cfg
		return &Repository{cfg: cfg}, func() {}, nil
	}

	repo, err := storage.New(context.Background(), storage.Config{Kind: "sqlite", DSN: "x.db", Table: "partidos"})
	require.NoError(t, err)
	repo.Close()
	require.Equal(t, Config{DSN: "x.db", Table: "partidos"}, got)
}
