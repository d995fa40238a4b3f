package sqlcsv

import (
	"context"
	"log/slog"

	"github.com/nao1215/sqlcsv/driver"
)

// Pipeline loads its inputs into a fresh store, runs one query and
// delivers the encoded result. A Pipeline may be run more than once; each
// run uses its own store.
type Pipeline struct {
	paths     []string
	batchSize int
	pragmas   []string
	loader    *loader
	logger    *slog.Logger
}

// Paths returns the input files in table order.
func (p *Pipeline) Paths() []string {
	out := make([]string, len(p.paths))
	copy(out, p.paths)
	return out
}

// Run loads every input, executes query and writes the result to sink.
// The store is closed before Run returns, whether or not it succeeded.
// Nothing is written to sink unless the whole result encodes cleanly.
func (p *Pipeline) Run(ctx context.Context, query string, sink Sink) (Report, error) {
	var report Report

	if fileSink, ok := sink.(*FileSink); ok {
		if err := newValidator().validateDistinctOutput(fileSink.Path(), p.paths); err != nil {
			return report, newErrorContext("run", fileSink.Path()).wrap(ErrIOFailure, err)
		}
	}

	store, err := OpenStore(ctx, p.pragmas...)
	if err != nil {
		return report, err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			p.logger.Warn("failed to close store", "error", closeErr)
		}
	}()

	tables, err := p.ingest(ctx, store)
	report.Tables = tables
	if err != nil {
		return report, err
	}

	p.logger.Debug("running query", "query", driver.SanitizeForLog(query))
	rs, err := store.Query(ctx, query)
	if err != nil {
		return report, err
	}

	data, err := newResultEncoder(sink.Delimiter()).encode(rs)
	if err != nil {
		return report, err
	}
	if err := sink.Write(data); err != nil {
		return report, err
	}

	report.Columns = rs.Columns.Names()
	report.ResultRows = rs.Len()
	p.logger.Info("query complete",
		"columns", rs.Columns.Len(),
		"rows", rs.Len(),
		"synthetic_header", rs.Columns.IsSynthetic(),
		"bytes", len(data))
	return report, nil
}
