// Package datasource defines where pipeline input bytes come from.
package datasource

import (
	"context"
	"io"
)

// Source opens the raw input of a run.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
