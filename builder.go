package sqlcsv

import (
	"context"
	"log/slog"

	"github.com/nao1215/sqlcsv/driver"
)

// Builder configures a Pipeline.
//
// The typical usage pattern is:
//
//	pipeline, err := sqlcsv.NewBuilder().
//	    AddPaths("a.csv", "b.csv").
//	    WithBatchSize(500).
//	    Build(ctx)
//	if err != nil {
//	    return err
//	}
//	report, err := pipeline.Run(ctx, "SELECT * FROM table1", sink)
type Builder struct {
	// paths are loaded in order as table1, table2, ...
	paths []string
	// batchSize is the number of rows per INSERT
	batchSize int
	// noHeader treats the first row of every source as data
	noHeader bool
	// pragmas are applied to the store when it is opened
	pragmas []string
	// logger receives progress messages
	logger *slog.Logger
}

// NewBuilder creates a new builder with the default batch size and a
// logger that discards everything.
func NewBuilder() *Builder {
	return &Builder{
		paths:     make([]string, 0),
		batchSize: DefaultBatchSize,
		pragmas:   make([]string, 0),
		logger:    slog.New(slog.DiscardHandler),
	}
}

// AddPath adds an input file. Files become tables in the order they are added.
func (b *Builder) AddPath(path string) *Builder {
	b.paths = append(b.paths, path)
	return b
}

// AddPaths adds multiple input files.
func (b *Builder) AddPaths(paths ...string) *Builder {
	b.paths = append(b.paths, paths...)
	return b
}

// WithBatchSize sets the number of rows sent in one INSERT statement.
// The store's bound parameter limit may lower it further for wide tables.
func (b *Builder) WithBatchSize(size int) *Builder {
	b.batchSize = size
	return b
}

// WithoutHeader treats the first row of each source as data and names
// columns col1..colN. Parquet sources always use their schema names.
func (b *Builder) WithoutHeader() *Builder {
	b.noHeader = true
	return b
}

// WithPragmas sets pragmas applied to the store, e.g. "cache_size = -64000".
func (b *Builder) WithPragmas(pragmas ...string) *Builder {
	b.pragmas = append(b.pragmas, pragmas...)
	return b
}

// WithLogger sets the logger used for progress messages.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Build validates the configuration and returns a ready Pipeline.
// Missing or unreadable inputs wrap ErrIOFailure; bad options wrap
// ErrInvalidOption.
func (b *Builder) Build(ctx context.Context) (*Pipeline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	v := newValidator()
	if len(b.paths) == 0 {
		return nil, newErrorContext("build", "").wrap(ErrIOFailure, errNoSources)
	}
	for _, path := range b.paths {
		if err := v.validateSourcePath(path); err != nil {
			return nil, newErrorContext("build", path).wrap(ErrIOFailure, err)
		}
	}
	if err := v.validateBatchSize(b.batchSize); err != nil {
		return nil, newErrorContext("build", "").wrap(ErrInvalidOption, err)
	}
	for _, p := range b.pragmas {
		if err := driver.ValidatePragma(p); err != nil {
			return nil, newErrorContext("build", "").wrap(ErrInvalidOption, err)
		}
	}

	paths := make([]string, len(b.paths))
	copy(paths, b.paths)
	pragmas := make([]string, len(b.pragmas))
	copy(pragmas, b.pragmas)

	return &Pipeline{
		paths:     paths,
		batchSize: b.batchSize,
		pragmas:   pragmas,
		loader:    newLoader(b.noHeader),
		logger:    b.logger,
	}, nil
}
