package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks the run.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is reported but does not block the run.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding.
//
// Path is a dotted path into the config (e.g. "columnas_agrupacion[1]",
// "storage.dsn"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be returned as one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Validate performs static checks over a decoded Config and returns the
// findings. It does not touch the input data, so column existence is left
// to the pipeline.
func Validate(c Config) []Issue {
	var issues []Issue

	issues = append(issues, validateColumns(c)...)
	issues = append(issues, validateInput(c.Input)...)
	issues = append(issues, validateStorage(c.Storage)...)
	issues = append(issues, validateMetrics(c.Metrics)...)

	return issues
}

func validateColumns(c Config) []Issue {
	var issues []Issue

	if len(c.GroupBy) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     KeyGroupBy,
			Message:  "at least one grouping column is required",
		})
	}
	issues = append(issues, checkNames(KeyGroupBy, c.GroupBy, true)...)
	// Repeats in the per-90 and final lists are legal: they yield repeated
	// output columns.
	issues = append(issues, checkNames(KeyPer90, c.Per90, false)...)
	issues = append(issues, checkNames(KeyFinal, c.Final, false)...)

	grouping := make(map[string]struct{}, len(c.GroupBy))
	for _, g := range c.GroupBy {
		grouping[g] = struct{}{}
	}
	for _, k := range c.Sum.Keys() {
		v, _ := c.Sum.Get(k)
		path := fmt.Sprintf("%s.%s", KeySum, k)
		if strings.TrimSpace(k) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  "sum column name must not be empty",
			})
			continue
		}
		if _, ok := grouping[k]; ok {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  fmt.Sprintf("%q is a grouping column and cannot also be summed", k),
			})
		}
		if v != k {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path,
				Message:  fmt.Sprintf("value %q is ignored; the sum keeps the name %q", v, k),
			})
		}
	}

	if len(c.Final) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     KeyFinal,
			Message:  "empty final column list; output will only hold per-90 columns",
		})
	}
	return issues
}

// checkNames flags empty names, and duplicates when unique is set.
func checkNames(key string, names []string, unique bool) []Issue {
	var issues []Issue
	seen := make(map[string]int, len(names))
	for i, n := range names {
		path := fmt.Sprintf("%s[%d]", key, i)
		if strings.TrimSpace(n) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  "column name must not be empty",
			})
			continue
		}
		if j, ok := seen[n]; ok && unique {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  fmt.Sprintf("duplicate column %q (first at index %d)", n, j),
			})
			continue
		}
		seen[n] = i
	}
	return issues
}

func validateInput(in Input) []Issue {
	if in.Comma == "" {
		return nil
	}
	r := in.Delimiter()
	if len([]rune(in.Comma)) != 1 || r == '"' || r == '\r' || r == '\n' {
		return []Issue{{
			Severity: SeverityError,
			Path:     "input.comma",
			Message:  fmt.Sprintf("invalid delimiter %q; use a single character other than quote or newline", in.Comma),
		}}
	}
	return nil
}

func validateStorage(s Storage) []Issue {
	if !s.Enabled() {
		return nil
	}
	var issues []Issue
	if kinds := storage.ListKinds(); !slices.Contains(kinds, s.Kind) {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q (registered: %s)", s.Kind, strings.Join(kinds, ", ")),
		})
	}
	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "storage requires a non-empty dsn",
		})
	}
	if strings.TrimSpace(s.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.table",
			Message:  "storage requires a non-empty table",
		})
	}
	if s.BatchSize < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.batch_size",
			Message:  "batch_size must be >= 0",
		})
	}
	return issues
}

func validateMetrics(m Metrics) []Issue {
	switch m.Backend {
	case "", "none":
		return nil
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires pushgateway_url",
			}}
		}
	case "datadog":
		if strings.TrimSpace(m.DatadogAddr) == "" {
			return []Issue{{
				Severity: SeverityError,
				Path:     "metrics.datadog_addr",
				Message:  "datadog backend requires datadog_addr",
			}}
		}
	default:
		return []Issue{{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics disabled", m.Backend),
		}}
	}
	return nil
}
