package mysql

import (
	"fmt"
	"strings"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// MapType returns the MySQL column type for a table column kind.
func MapType(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "DOUBLE"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for td
// using utf8mb4 so accented names round-trip.
func BuildCreateTableSQL(td storage.TableDef) (string, error) {
	if strings.TrimSpace(td.FQN) == "" {
		return "", fmt.Errorf("mysql ddl: table FQN must not be empty")
	}
	if len(td.Columns) == 0 {
		return "", fmt.Errorf("mysql ddl: at least one column is required")
	}
	cols := make([]string, 0, len(td.Columns))
	for _, c := range td.Columns {
		if c.Name == "" {
			return "", fmt.Errorf("mysql ddl: column with empty name in table %s", td.FQN)
		}
		cols = append(cols, quoteIdent(c.Name)+" "+MapType(c.Kind)+" NULL")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n  %s\n) DEFAULT CHARSET=utf8mb4;",
		quoteFQN(td.FQN), strings.Join(cols, ",\n  ")), nil
}
