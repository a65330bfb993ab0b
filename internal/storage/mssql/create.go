package mssql

import (
	"fmt"
	"strings"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// MapType returns the SQL Server column type for a table column kind.
func MapType(k table.Kind) string {
	switch k {
	case table.Int:
		return "BIGINT"
	case table.Float:
		return "FLOAT"
	default:
		return "NVARCHAR(MAX)"
	}
}

// BuildCreateTableSQL returns a T-SQL script creating td unless it exists:
//
//	IF OBJECT_ID(N'[schema].[table]', N'U') IS NULL
//	BEGIN
//	  CREATE TABLE [schema].[table] (
//	    [col1] TYPE NULL,
//	    ...
//	  );
//	END;
func BuildCreateTableSQL(td storage.TableDef) (string, error) {
	fqn := strings.TrimSpace(td.FQN)
	if fqn == "" {
		return "", fmt.Errorf("mssql ddl: table FQN must not be empty")
	}
	if len(td.Columns) == 0 {
		return "", fmt.Errorf("mssql ddl: at least one column is required")
	}
	cols := make([]string, 0, len(td.Columns))
	for _, c := range td.Columns {
		if c.Name == "" {
			return "", fmt.Errorf("mssql ddl: column with empty name in table %s", fqn)
		}
		cols = append(cols, msIdent(c.Name)+" "+MapType(c.Kind)+" NULL")
	}
	q := msFQN(fqn)
	return fmt.Sprintf(
		"IF OBJECT_ID(N'%s', N'U') IS NULL\nBEGIN\n  CREATE TABLE %s (\n    %s\n  );\nEND;",
		strings.ReplaceAll(q, "'", "''"), q, strings.Join(cols, ",\n    "),
	), nil
}
