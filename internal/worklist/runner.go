package worklist

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/takak2166/worklist/internal/logger"
	"github.com/takak2166/worklist/internal/parser"
	"github.com/takak2166/worklist/internal/render"
)

var (
	// ErrMissingSource is returned when no source directory is given
	ErrMissingSource = errors.New("source directory path is not specified")
	// ErrMissingDestination is returned when no destination file is given
	ErrMissingDestination = errors.New("destination file is not specified")
)

// Result summarizes a single run
type Result struct {
	Listed  int
	Parsed  int
	Written int
}

// Runner regenerates the work list of an HTML file from a source directory
type Runner struct {
	store  Store
	parser *parser.Parser
	opts   render.Options
}

// NewRunner creates a new Runner
func NewRunner(store Store, p *parser.Parser, opts render.Options) *Runner {
	if p == nil {
		p = &parser.Parser{}
	}
	return &Runner{
		store:  store,
		parser: p,
		opts:   opts,
	}
}

// Run lists sourceDir, renders the entries into the container of destination
// and writes the body of the resulting document back to destination.
func (r *Runner) Run(ctx context.Context, sourceDir, destination string) (Result, error) {
	var result Result

	if sourceDir == "" {
		return result, ErrMissingSource
	}
	if destination == "" {
		return result, ErrMissingDestination
	}

	logger.Info("Starting work list generation", map[string]interface{}{
		"source":      sourceDir,
		"destination": destination,
	})

	names, err := r.store.ListNames(ctx, sourceDir)
	if err != nil {
		return result, fmt.Errorf("failed to read source directory: %w", err)
	}
	result.Listed = len(names)
	logger.Info(fmt.Sprintf("[1/4] Read source directory: %d entries found", result.Listed))

	entries := r.parser.ParseAll(names)
	result.Parsed = len(entries)
	logger.Info(fmt.Sprintf("[2/4] Analyzed works: %d of %d processed", result.Parsed, result.Listed))

	data, err := r.store.ReadDocument(ctx, destination)
	if err != nil {
		return result, fmt.Errorf("failed to read destination file: %w", err)
	}
	doc, err := render.Load(bytes.NewReader(data))
	if err != nil {
		return result, err
	}

	container := render.Render(doc, entries, r.opts)
	logger.Info("[3/4] Rendered work list: done")

	if err := render.Attach(doc, container); err != nil {
		return result, err
	}

	var out bytes.Buffer
	if err := render.SerializeBody(&out, doc); err != nil {
		return result, err
	}
	if err := r.store.WriteDocument(ctx, destination, out.Bytes()); err != nil {
		return result, fmt.Errorf("failed to write destination file: %w", err)
	}
	result.Written = out.Len()
	logger.Info("[4/4] Wrote HTML file: done", map[string]interface{}{
		"bytes": result.Written,
	})

	logger.Info("All tasks completed")
	return result, nil
}
