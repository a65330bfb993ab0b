// Package config defines the JSON configuration that drives a report run.
//
// The file names which input columns form the player-match key, which
// columns are summed, which are normalized per 90 minutes and the final
// column order. Optional sections configure the CSV dialect, extra exports,
// a database sink and a metrics backend.
//
// Example (trimmed):
//
//	{
//	  "columnas_agrupacion": ["Jugador", "Rival", "DNI"],
//	  "columnas_a_sumar":    {"Minutos Jugados": "Minutos Jugados", "1v1D+": "1v1D+"},
//	  "columnas_por_90":     ["1v1D+"],
//	  "columnas_finales":    ["Jugador", "Rival", "DNI", "Minutos Jugados", "1v1D+"],
//	  "storage": {"kind": "sqlite", "dsn": "informe.db", "table": "partidos"}
//	}
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
)

// Required top-level keys. A file missing any of them is rejected by Load.
const (
	KeyGroupBy = "columnas_agrupacion"
	KeySum     = "columnas_a_sumar"
	KeyPer90   = "columnas_por_90"
	KeyFinal   = "columnas_finales"
)

var requiredKeys = []string{KeyGroupBy, KeySum, KeyPer90, KeyFinal}

// Config is the decoded configuration file. It is loaded once per run and
// treated as read-only afterwards.
type Config struct {
	// GroupBy lists the columns whose values identify one player-match.
	GroupBy []string `json:"columnas_agrupacion"`

	// Sum lists the summed metrics as keys, in file order. Summed columns
	// keep their input names; the values are not used as output names.
	Sum ColumnMap `json:"columnas_a_sumar"`

	// Per90 lists the columns that get a "<col> por 90 minutos" companion.
	Per90 []string `json:"columnas_por_90"`

	// Final is the output column order before the per-90 columns.
	Final []string `json:"columnas_finales"`

	Input   Input   `json:"input"`
	Export  Export  `json:"export"`
	Storage Storage `json:"storage"`
	Metrics Metrics `json:"metrics"`
}

// Input configures the CSV dialect of the input file.
type Input struct {
	// Comma is the field delimiter; empty means ",".
	Comma string `json:"comma"`
}

// Delimiter returns the configured delimiter rune.
func (i Input) Delimiter() rune {
	if i.Comma == "" {
		return ','
	}
	return []rune(i.Comma)[0]
}

// Export configures optional copies of the output table.
type Export struct {
	// XLSX, when set, is the path of a spreadsheet copy of the output.
	XLSX string `json:"xlsx"`

	// Sheet names the worksheet; empty means "Sheet1".
	Sheet string `json:"sheet"`
}

// Storage configures an optional database sink for the output table.
type Storage struct {
	// Kind selects the backend: postgres, mssql, mysql or sqlite. Empty
	// disables the sink.
	Kind string `json:"kind"`

	// DSN is the driver connection string.
	DSN string `json:"dsn"`

	// Table is the destination table, optionally schema qualified.
	Table string `json:"table"`

	// AutoCreateTable creates the table from the output columns when it
	// does not exist.
	AutoCreateTable bool `json:"auto_create_table"`

	// BatchSize bounds the rows sent per bulk copy; zero means 1000.
	BatchSize int `json:"batch_size"`
}

// Enabled reports whether a storage sink is configured.
func (s Storage) Enabled() bool { return s.Kind != "" }

// Metrics configures the optional metrics backend.
type Metrics struct {
	// Backend is one of "", "none", "pushgateway" or "datadog".
	Backend string `json:"backend"`

	// Job labels every metric; empty means "informe".
	Job string `json:"job"`

	PushgatewayURL string   `json:"pushgateway_url"`
	DatadogAddr    string   `json:"datadog_addr"`
	Tags           []string `json:"tags"`
}

// JobName returns the metrics job label.
func (m Metrics) JobName() string {
	if m.Job == "" {
		return "informe"
	}
	return m.Job
}

// Load reads and decodes the configuration at path. The four column keys
// are required; any other key is optional.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Decode(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses a configuration document.
func Decode(data []byte) (Config, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	for _, k := range requiredKeys {
		v, ok := raw[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return Config{}, fmt.Errorf("decode config: missing required key %q", k)
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg.normalized(), nil
}

// normalized returns cfg with every column name in Unicode NFC, the same
// form the CSV reader gives header names.
func (c Config) normalized() Config {
	c.GroupBy = nfcAll(c.GroupBy)
	c.Per90 = nfcAll(c.Per90)
	c.Final = nfcAll(c.Final)
	var sum ColumnMap
	for _, k := range c.Sum.Keys() {
		v, _ := c.Sum.Get(k)
		sum = sum.With(norm.NFC.String(k), norm.NFC.String(v))
	}
	c.Sum = sum
	return c
}

func nfcAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = norm.NFC.String(s)
	}
	return out
}
