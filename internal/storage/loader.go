package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// DefaultBatchSize is used when Load is given a non-positive batch size.
const DefaultBatchSize = 1000

// CopyFn abstracts a backend's bulk insert. It inserts rows aligned to
// columns and returns the number of rows inserted.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// Load sends every row of t to copyFn in batches of batchSize and returns
// the number of rows inserted. Repeated column names are sent once, using
// their first occurrence. Progress is logged after each batch.
func Load(ctx context.Context, t *table.Table, batchSize int, copyFn CopyFn) (int64, error) {
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	idx := uniqueColumns(t)
	all := t.Columns()
	cols := make([]*table.Column, len(idx))
	names := make([]string, len(idx))
	for j, i := range idx {
		cols[j] = all[i]
		names[j] = all[i].Name()
	}

	var (
		total   int64
		batches int
		start   = time.Now()
		batch   = make([][]any, 0, min(batchSize, t.Rows()))
	)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := copyFn(ctx, names, batch)
		total += n
		batch = batch[:0]
		if err != nil {
			log.Printf("loader: copy failed after=%d total=%d err=%v", n, total, err)
			return err
		}
		batches++
		log.Printf("loader: batch #%d inserted=%d total_inserted=%d elapsed=%s",
			batches, n, total, time.Since(start).Truncate(time.Millisecond))
		return nil
	}

	for r := 0; r < t.Rows(); r++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = c.Value(r)
		}
		batch = append(batch, row)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

// uniqueColumns returns the positions of the first column of each name.
func uniqueColumns(t *table.Table) []int {
	seen := make(map[string]bool, t.Width())
	var out []int
	for i, n := range t.Names() {
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, i)
	}
	return out
}
