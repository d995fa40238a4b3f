package sqlcsv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nao1215/sqlcsv/domain/model"
	"github.com/nao1215/sqlcsv/driver"
)

// Store is a private in-memory SQL database. It is created empty by
// OpenStore, holds the loaded tables for the life of one run, and is
// discarded on Close.
type Store struct {
	db *sql.DB
}

// OpenStore creates a new empty store and applies pragmas to it.
func OpenStore(ctx context.Context, pragmas ...string) (*Store, error) {
	ec := newErrorContext("open store", "")

	connector, err := driver.NewConnector(pragmas...)
	if err != nil {
		return nil, ec.wrap(ErrStoreWriteFailed, err)
	}

	db := sql.OpenDB(connector)
	// Each connection is its own in-memory database, so the pool must hold
	// exactly one connection for the whole run.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, ec.wrap(ErrStoreWriteFailed, err)
	}
	return &Store{db: db}, nil
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ExecContext executes a statement that returns no rows.
func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

// createTable creates the table for t
func (s *Store) createTable(ctx context.Context, t *sourceTable) error {
	ec := newErrorContext("create table", t.path).withTable(t.name.String())
	if err := driver.ValidateColumnCount(len(t.header)); err != nil {
		return ec.wrap(ErrStoreWriteFailed, err)
	}
	if _, err := s.ExecContext(ctx, t.createStatement()); err != nil {
		return ec.wrap(ErrStoreWriteFailed, err)
	}
	return nil
}

// Query runs query verbatim and returns every row. A query that yields no
// rows is an error wrapping ErrNoRows.
func (s *Store) Query(ctx context.Context, query string) (*ResultSet, error) {
	ec := newErrorContext("query", "").withDetails("%s", driver.SanitizeForLog(query))

	if strings.TrimSpace(query) == "" {
		return nil, ec.wrap(ErrQueryFailed, errBlankQuery)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, ec.wrap(ErrQueryFailed, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, ec.wrap(ErrQueryFailed, err)
	}

	result := &ResultSet{Columns: model.ResolveColumns(names, len(names))}
	for rows.Next() {
		values := make([]any, len(names))
		dest := make([]any, len(names))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, ec.wrap(ErrQueryFailed, err)
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, ec.wrap(ErrQueryFailed, err)
	}

	if result.Len() == 0 {
		return nil, ec.wrap(ErrNoRows, nil)
	}
	return result, nil
}

// Close discards the store and everything loaded into it.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}
