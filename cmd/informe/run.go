package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/aggregate"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/config"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/datasource"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/datasource/file"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/metrics"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/metrics/datadog"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/metrics/prompush"
	csvparser "github.com/MatiasCirillo/automatizacion-informe-partidos/internal/parser/csv"
	csvsink "github.com/MatiasCirillo/automatizacion-informe-partidos/internal/sink/csv"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/sink/xlsx"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/storage"
	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// Step names recorded around the chain.
const (
	stepRead     = "read_input"
	stepWriteCSV = "write_csv"
	stepXLSX     = "export_xlsx"
	stepStore    = "store"
)

// errInvalidConfig is returned after validation issues have been printed.
var errInvalidConfig = errors.New("configuration is invalid")

// Function variables used as test seams.
var (
	newRepositoryFn = storage.New

	openSourceFn = func(path string) datasource.Source { return file.NewLocal(path) }
)

type options struct {
	configPath string
	input      string
	output     string
	stdout     io.Writer
	stderr     io.Writer
}

// run executes one report: load and validate the config, read the input,
// run the aggregation chain, write the CSV and the optional sinks, then
// print the confirmation line.
func run(ctx context.Context, o options) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	issues := config.Validate(cfg)
	for _, iss := range issues {
		fmt.Fprintf(o.stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		return fmt.Errorf("%s: %w", o.configPath, errInvalidConfig)
	}

	runID := uuid.NewString()
	job := cfg.Metrics.JobName()
	flush := setupMetrics(cfg.Metrics, runID)
	defer flush()

	start := time.Now()
	var in *table.Table
	err = timed(job, stepRead, func() error {
		in, err = readInput(ctx, o.input, cfg.Input.Delimiter())
		return err
	})
	if err != nil {
		return err
	}
	metrics.RecordRow(job, "read", int64(in.Rows()))

	chain := aggregate.Build(cfg)
	log.Printf("aggregate: steps=%s", strings.Join(chain.Names(), ","))
	out, err := chain.Run(in, func(step string, err error, d time.Duration) {
		metrics.RecordStep(job, step, err, d)
	})
	if err != nil {
		return fmt.Errorf("aggregate: %w", err)
	}

	if err := timed(job, stepWriteCSV, func() error { return csvsink.WriteFile(o.output, out) }); err != nil {
		return fmt.Errorf("write %s: %w", o.output, err)
	}
	metrics.RecordRow(job, "written", int64(out.Rows()))

	if cfg.Export.XLSX != "" {
		err := timed(job, stepXLSX, func() error { return xlsx.WriteFile(cfg.Export.XLSX, cfg.Export.Sheet, out) })
		if err != nil {
			return err
		}
		log.Printf("export: xlsx=%s rows=%d", cfg.Export.XLSX, out.Rows())
	}

	if cfg.Storage.Enabled() {
		if err := timed(job, stepStore, func() error { return store(ctx, cfg.Storage, out, job) }); err != nil {
			return err
		}
	}

	log.Printf("run %s: rows_in=%d rows_out=%d columns=%d elapsed=%s",
		runID, in.Rows(), out.Rows(), out.Width(), time.Since(start).Truncate(time.Millisecond))
	fmt.Fprintf(o.stdout, "Archivo transformado y guardado en: %s\n", o.output)
	return nil
}

func readInput(ctx context.Context, path string, comma rune) (*table.Table, error) {
	rc, err := openSourceFn(path).Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	t, err := csvparser.NewParser(csvparser.Options{Comma: comma}).Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// store loads t into the configured table, creating it first when asked.
func store(ctx context.Context, s config.Storage, t *table.Table, job string) error {
	repo, err := newRepositoryFn(ctx, storage.Config{Kind: s.Kind, DSN: s.DSN, Table: s.Table})
	if err != nil {
		return fmt.Errorf("storage: open %s: %w", s.Kind, err)
	}
	defer repo.Close()

	if s.AutoCreateTable {
		if err := storage.EnsureTable(ctx, s.Kind, repo, storage.TableDefOf(s.Table, t)); err != nil {
			return fmt.Errorf("storage: apply DDL: %w", err)
		}
	}

	var batches int64
	n, err := storage.Load(ctx, t, s.BatchSize, func(ctx context.Context, columns []string, rows [][]any) (int64, error) {
		batches++
		return repo.CopyFrom(ctx, columns, rows)
	})
	metrics.RecordBatches(job, batches)
	metrics.RecordRow(job, "inserted", n)
	if err != nil {
		return fmt.Errorf("storage: load %s: %w", s.Table, err)
	}
	log.Printf("storage: kind=%s table=%s inserted=%d batches=%d", s.Kind, s.Table, n, batches)
	return nil
}

// setupMetrics installs the configured backend and returns the function
// that flushes it at the end of the run.
func setupMetrics(m config.Metrics, runID string) func() {
	job := m.JobName()
	switch m.Backend {
	case "pushgateway":
		b, err := prompush.NewBackend(job, m.PushgatewayURL, prompush.WithGrouping("run", runID))
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			break
		}
		log.Printf("metrics: url=%v, backend=%v, job_name=%v", m.PushgatewayURL, m.Backend, job)
		metrics.SetBackend(b)

	case "datadog":
		tags := append(append([]string(nil), m.Tags...), "job:"+job, "run:"+runID)
		b, err := datadog.NewBackend(datadog.Config{Addr: m.DatadogAddr, GlobalTags: tags})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			break
		}
		log.Printf("metrics: addr=%v, backend=%v, job_name=%v", m.DatadogAddr, m.Backend, job)
		metrics.SetBackend(b)

	case "", "none":
		// nop backend remains

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", m.Backend)
	}

	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}

// timed runs fn and records it as step.
func timed(job, step string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordStep(job, step, err, time.Since(start))
	return err
}
