// Package all registers every built-in storage backend with the storage
// factory. Import it for side effects:
//
//	import _ "github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage/all"
//
// Kinds made available: "postgres", "mssql", "mysql" and "sqlite".
package all

import (
	_ "github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage/mssql"
	_ "github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage/mysql"
	_ "github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage/postgres"
	_ "github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage/sqlite"
)
