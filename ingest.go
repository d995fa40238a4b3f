package sqlcsv

import (
	"context"
	"time"

	"github.com/nao1215/sqlcsv/domain/model"
)

// ingest loads every input into store, one after another, as table1,
// table2 and so on. It stops at the first failure; tables loaded before
// it stay in the store until the store is closed.
func (p *Pipeline) ingest(ctx context.Context, store *Store) ([]TableReport, error) {
	reports := make([]TableReport, 0, len(p.paths))

	for i, path := range p.paths {
		name := model.NewTableName(i + 1)
		if err := ctx.Err(); err != nil {
			return reports, newErrorContext("load", path).withTable(name.String()).wrap(ErrIOFailure, err)
		}

		report, err := p.ingestOne(ctx, store, path, name)
		if err != nil {
			p.logger.Error("failed to load table", "table", name.String(), "path", path, "error", err)
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ingestOne reads the header of path, creates the table and streams the
// rows into it
func (p *Pipeline) ingestOne(ctx context.Context, store *Store, path string, name model.TableName) (TableReport, error) {
	start := time.Now()

	table, err := p.loader.load(path, name)
	if err != nil {
		return TableReport{}, err
	}
	defer func() {
		if closeErr := table.close(); closeErr != nil {
			p.logger.Warn("failed to close source", "path", path, "error", closeErr)
		}
	}()

	if err := store.createTable(ctx, table); err != nil {
		return TableReport{}, err
	}

	stats, err := newBatchInserter(store, table, p.batchSize).insertAll(ctx)
	if err != nil {
		p.logger.Debug("partial table kept", "table", name.String(), "rows", stats.rows, "batches", stats.batches)
		return TableReport{}, err
	}

	p.logger.Info("loaded table",
		"table", name.String(),
		"path", path,
		"columns", len(table.header),
		"rows", stats.rows,
		"batches", stats.batches,
		"elapsed", time.Since(start))

	return TableReport{
		Name:    name.String(),
		Path:    path,
		Columns: []string(table.header),
		Rows:    stats.rows,
		Batches: stats.batches,
	}, nil
}
