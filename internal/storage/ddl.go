package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// ColumnDef describes one destination column. Name is unquoted; backends
// quote it and map Kind to their own SQL type when rendering DDL.
type ColumnDef struct {
	Name string
	Kind table.Kind
}

// TableDef is a destination table: a possibly schema-qualified name in
// dotted form and its ordered columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// TableDefOf describes the table that holds t under the name fqn. Repeated
// column names are listed once, at their first position.
func TableDefOf(fqn string, t *table.Table) TableDef {
	td := TableDef{FQN: fqn}
	for _, i := range uniqueColumns(t) {
		c := t.Columns()[i]
		td.Columns = append(td.Columns, ColumnDef{Name: c.Name(), Kind: c.Kind()})
	}
	return td
}

// DDLBootstrapper creates the table described by td through repo when it
// does not exist yet.
type DDLBootstrapper func(ctx context.Context, repo Repository, td TableDef) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) the DDLBootstrapper for kind.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable runs the DDLBootstrapper registered for kind.
func EnsureTable(ctx context.Context, kind string, repo Repository, td TableDef) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo, td)
}
