package postgres

import (
	"context"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests replace it to avoid real connections.
var newRepository = NewRepository

// wrappedRepo adapts *Repository to storage.Repository and closes the pool.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

var _ storage.Repository = (*wrappedRepo)(nil)

// Close implements storage.Repository.Close.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}

func init() {
	storage.Register("postgres", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("postgres", func(ctx context.Context, repo storage.Repository, td storage.TableDef) error {
		sql, err := BuildCreateTableSQL(td)
		if err != nil {
			return err
		}
		return repo.Exec(ctx, sql)
	})
}
