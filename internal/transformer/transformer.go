// Package transformer runs ordered table transforms.
package transformer

import (
	"fmt"
	"time"

	"github.com/MatiasCirillo/automatizacion-informe-partidos/internal/table"
)

// Transformer maps one table to another. Implementations must not modify
// the columns of their input; they return a table holding new columns.
type Transformer interface {
	Apply(*table.Table) (*table.Table, error)
}

// Func adapts a plain function to Transformer.
type Func func(*table.Table) (*table.Table, error)

// Apply calls f.
func (f Func) Apply(t *table.Table) (*table.Table, error) { return f(t) }

// Step is a named transform. The name prefixes errors and labels metrics.
type Step struct {
	Name string
	Transformer
}

// Observer is notified after each step with its outcome and duration.
type Observer func(step string, err error, d time.Duration)

// Chain is an ordered list of steps.
type Chain []Step

// Apply runs every step in order.
func (c Chain) Apply(in *table.Table) (*table.Table, error) {
	return c.Run(in, nil)
}

// Run runs every step in order and reports each to obs when non-nil. It
// stops at the first failing step.
func (c Chain) Run(in *table.Table, obs Observer) (*table.Table, error) {
	out := in
	for _, s := range c {
		start := time.Now()
		next, err := s.Apply(out)
		if obs != nil {
			obs(s.Name, err, time.Since(start))
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		out = next
	}
	return out, nil
}

// Names returns the step names in order.
func (c Chain) Names() []string {
	out := make([]string, len(c))
	for i, s := range c {
		out[i] = s.Name
	}
	return out
}
