// Package aggregate builds the player-match report chain from a Config.
//
// The chain coerces the loss sub-columns and the summed columns to numbers,
// derives PERDIDAS, sums every metric per grouping key, guards zero minutes,
// adds the per-90 columns and finally selects the output columns.
package aggregate

import (
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/config"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/transformer"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/transformer/builtin"
)

// Column names the report depends on regardless of configuration.
const (
	MinutesColumn = "Minutos Jugados"
	DNIColumn     = "DNI"
	LossesColumn  = "PERDIDAS"

	// Per90Suffix is appended to a column name to name its per-90 rate.
	Per90Suffix = " por 90 minutos"
)

// LossComponents are the columns summed into LossesColumn.
var LossComponents = []string{
	"PERDIDAS: xControl",
	"PERDIDAS: xGambeta",
	"PERDIDAS: xPase",
}

const (
	// MinutesEpsilon replaces zero minutes before dividing.
	MinutesEpsilon = 0.00001

	minutesPerMatch = 90
)

// Step names, used in error prefixes and metric labels.
const (
	StepCoerceLosses = "coerce_losses"
	StepDeriveLosses = "derive_losses"
	StepCoerceSums   = "coerce_sums"
	StepGroup        = "group_sum"
	StepGuardMinutes = "guard_minutes"
	StepPer90        = "per90"
	StepPer90DNI     = "per90_dni"
	StepSelect       = "select_final"
)

// SumMapping returns the configured sum mapping with LossesColumn added.
// An existing LossesColumn entry keeps its position. Only the keys are
// used: summed columns keep their input names.
func SumMapping(cfg config.Config) config.ColumnMap {
	return cfg.Sum.With(LossesColumn, LossesColumn)
}

// OutputColumns returns the requested output order: the final columns
// followed by one per-90 column per configured per-90 column.
func OutputColumns(cfg config.Config) []string {
	out := make([]string, 0, len(cfg.Final)+len(cfg.Per90))
	out = append(out, cfg.Final...)
	for _, c := range cfg.Per90 {
		out = append(out, c+Per90Suffix)
	}
	return out
}

// Build returns the report chain for cfg.
func Build(cfg config.Config) transformer.Chain {
	sums := SumMapping(cfg)

	// PERDIDAS is derived, not read.
	inputSums := make([]string, 0, sums.Len())
	for _, k := range sums.Keys() {
		if k != LossesColumn {
			inputSums = append(inputSums, k)
		}
	}

	return transformer.Chain{
		{Name: StepCoerceLosses, Transformer: builtin.Coerce{Columns: LossComponents}},
		{Name: StepDeriveLosses, Transformer: builtin.SumColumns{Output: LossesColumn, Inputs: LossComponents}},
		{Name: StepCoerceSums, Transformer: builtin.Coerce{Columns: inputSums}},
		{Name: StepGroup, Transformer: builtin.GroupSum{Keys: cfg.GroupBy, Sums: sums.Keys()}},
		{Name: StepGuardMinutes, Transformer: builtin.ZeroGuard{Column: MinutesColumn, Epsilon: MinutesEpsilon}},
		{Name: StepPer90, Transformer: builtin.PerMinutes{
			Columns: cfg.Per90,
			Minutes: MinutesColumn,
			Scale:   minutesPerMatch,
			Suffix:  Per90Suffix,
		}},
		{Name: StepPer90DNI, Transformer: builtin.PerMinutes{
			Columns: []string{DNIColumn},
			Minutes: MinutesColumn,
			Scale:   minutesPerMatch,
			Suffix:  Per90Suffix,
		}},
		{Name: StepSelect, Transformer: builtin.Project{Columns: OutputColumns(cfg)}},
	}
}
