package postgres

import (
	"fmt"
	"strings"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// MapType returns the Postgres column type for a table column kind.
func MapType(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for td.
// Identifiers are quoted with pgx.Identifier.Sanitize.
func BuildCreateTableSQL(td storage.TableDef) (string, error) {
	if strings.TrimSpace(td.FQN) == "" {
		return "", fmt.Errorf("postgres ddl: table FQN must not be empty")
	}
	if len(td.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}
	cols := make([]string, 0, len(td.Columns))
	for _, c := range td.Columns {
		if c.Name == "" {
			return "", fmt.Errorf("postgres ddl: column with empty name in table %s", td.FQN)
		}
		cols = append(cols, quoteIdent(c.Name)+" "+MapType(c.Kind))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		splitFQN(td.FQN).Sanitize(), strings.Join(cols, ",\n  ")), nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
