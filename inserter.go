package sqlcsv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/sqlcsv/domain/model"
	"github.com/nao1215/sqlcsv/driver"
)

// errPlaceholderMismatch is returned when a built statement would bind a
// different number of values than it has placeholders
var errPlaceholderMismatch = errors.New("placeholder count does not match argument count")

// execer is the part of the store the inserter needs.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertStatement is a multi-row INSERT and the values it binds.
type insertStatement struct {
	query        string
	placeholders int
	args         []any
}

// batchInserter writes rows of one table in multi-row INSERT statements.
type batchInserter struct {
	exec      execer
	table     *sourceTable
	batchSize int
}

// insertStats counts what an insert run did.
type insertStats struct {
	rows    int
	batches int
}

// newBatchInserter creates an inserter for table. The batch size is
// lowered when needed so one statement never binds more parameters than
// the store accepts.
func newBatchInserter(exec execer, table *sourceTable, batchSize int) *batchInserter {
	return &batchInserter{
		exec:      exec,
		table:     table,
		batchSize: effectiveBatchSize(batchSize, len(table.header)),
	}
}

// effectiveBatchSize clamps requested so that rows*columns stays within
// the bound parameter limit, keeping at least one row per batch.
func effectiveBatchSize(requested, columns int) int {
	if requested < MinBatchSize {
		requested = DefaultBatchSize
	}
	if columns < 1 {
		return requested
	}
	maxRows := driver.MaxBoundParameters / columns
	if maxRows < MinBatchSize {
		maxRows = MinBatchSize
	}
	return min(requested, maxRows)
}

// insertAll pulls rows from the table and sends them in batches of
// batchSize, then a final short batch with any remainder. Only the
// current batch is held in memory. A read error stops the run; batches
// already sent stay in the store.
func (b *batchInserter) insertAll(ctx context.Context) (insertStats, error) {
	var stats insertStats
	pending := make([]model.Record, 0, b.batchSize)

	send := func() error {
		if err := b.flush(ctx, b.build(pending), len(pending)); err != nil {
			return err
		}
		stats.rows += len(pending)
		stats.batches++
		pending = pending[:0]
		return nil
	}

	for {
		rec, err := b.table.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}
		pending = append(pending, rec)
		if len(pending) == b.batchSize {
			if err := send(); err != nil {
				return stats, err
			}
		}
	}

	if len(pending) > 0 {
		if err := send(); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// build renders the INSERT for rows
func (b *batchInserter) build(rows []model.Record) insertStatement {
	width := len(b.table.header)
	rowPlaceholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", width), ", ") + ")"

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(b.table.name.Quoted())
	sb.WriteString(" (")
	sb.WriteString(b.table.quotedColumns())
	sb.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*width)
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(rowPlaceholders)
		for _, v := range row.Padded(width) {
			args = append(args, v)
		}
	}

	return insertStatement{
		query:        sb.String(),
		placeholders: len(rows) * width,
		args:         args,
	}
}

// flush executes one statement
func (b *batchInserter) flush(ctx context.Context, stmt insertStatement, rowCount int) error {
	ec := newErrorContext("insert", b.table.path).
		withTable(b.table.name.String()).
		withDetails("%s", b.shape(rowCount))

	if stmt.placeholders != len(stmt.args) {
		return ec.wrap(ErrStoreWriteFailed,
			fmt.Errorf("%w: %d placeholders, %d values", errPlaceholderMismatch, stmt.placeholders, len(stmt.args)))
	}
	if _, err := b.exec.ExecContext(ctx, stmt.query, stmt.args...); err != nil {
		return ec.wrap(ErrStoreWriteFailed, err)
	}
	return nil
}

// shape describes a batch without its values, for error messages
func (b *batchInserter) shape(rowCount int) string {
	width := len(b.table.header)
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) x%d",
		b.table.name.Quoted(),
		b.table.quotedColumns(),
		strings.TrimSuffix(strings.Repeat("?, ", width), ", "),
		rowCount)
}
