// Package source provides the instruction sources the report engine reads
// from: a built-in sample set, CSV files and a SQLite store.
package source

import (
	"context"
	"fmt"

	"github.com/rustyeddy/fxreport/config"
	"github.com/rustyeddy/fxreport/instruction"
)

// Source retrieves trade instructions. An empty result is not an error
// here; the calculator rejects it.
type Source interface {
	RetrieveInstructions(ctx context.Context) ([]*instruction.Instruction, error)
}

// Open returns the source selected by cfg. The returned close function
// must be called once the source is no longer needed.
func Open(cfg config.SourceConfig) (Source, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Type {
	case "", "static":
		return Static{}, noop, nil
	case "csv":
		return NewCSV(cfg.Path), noop, nil
	case "sqlite":
		s, err := NewSQLite(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite source: %w", err)
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown source type %q", cfg.Type)
}
