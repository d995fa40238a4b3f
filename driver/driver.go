// Package driver provides the in-memory store connection used by sqlcsv.
//
// Every Connector creates a fresh, private SQLite database that lives only
// as long as the connection. Nothing is persisted to disk.
//
// Usage:
//
//	connector, err := driver.NewDriver().OpenConnector("journal_mode = OFF;synchronous = OFF")
//	db := sql.OpenDB(connector)
package driver

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strings"

	"modernc.org/sqlite"
)

// memoryDSN is the SQLite data source of a private in-memory database
const memoryDSN = ":memory:"

// Driver implements database/sql/driver.Driver interface for the in-memory store.
type Driver struct{}

// Connector creates in-memory SQLite connections with a fixed pragma list.
type Connector struct {
	driver  *Driver
	pragmas []string
}

// Connection is one in-memory SQLite database.
type Connection struct {
	conn driver.Conn
}

// Transaction wraps a SQLite transaction.
type Transaction struct {
	tx driver.Tx
}

// NewDriver creates a new store driver
func NewDriver() *Driver {
	return &Driver{}
}

// Open returns a connection to a new in-memory database; dsn holds pragmas.
func (d *Driver) Open(dsn string) (driver.Conn, error) {
	connector, err := d.OpenConnector(dsn)
	if err != nil {
		return nil, err
	}
	return connector.Connect(context.Background())
}

// OpenConnector implements driver.DriverContext interface.
// The dsn is a list of pragmas separated by semicolons; it may be empty.
func (d *Driver) OpenConnector(dsn string) (driver.Connector, error) {
	return NewConnector(ParsePragmas(dsn)...)
}

// NewConnector returns a connector that applies pragmas, in order, to every
// connection it creates.
func NewConnector(pragmas ...string) (*Connector, error) {
	cleaned := make([]string, 0, len(pragmas))
	for _, p := range pragmas {
		if strings.TrimSpace(p) == "" {
			continue
		}
		if err := ValidatePragma(p); err != nil {
			return nil, err
		}
		cleaned = append(cleaned, strings.TrimSpace(p))
	}
	return &Connector{
		driver:  NewDriver(),
		pragmas: cleaned,
	}, nil
}

// ParsePragmas splits a semicolon separated pragma list.
func ParsePragmas(dsn string) []string {
	var pragmas []string
	for _, p := range strings.Split(dsn, ";") {
		if p = strings.TrimSpace(p); p != "" {
			pragmas = append(pragmas, p)
		}
	}
	return pragmas
}

// Connect opens a fresh :memory: database and applies the connector's pragmas.
func (c *Connector) Connect(ctx context.Context) (driver.Conn, error) {
	sqliteDriver := &sqlite.Driver{}
	conn, err := sqliteDriver.Open(memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open :memory: database: %w", err)
	}

	for _, p := range c.pragmas {
		if err := c.executeStatement(ctx, conn, "PRAGMA "+p); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to apply pragma %q: %w", p, err)
		}
	}

	return &Connection{conn: conn}, nil
}

// Driver returns the driver that created c.
func (c *Connector) Driver() driver.Driver {
	return c.driver
}

// Pragmas returns the pragmas applied to new connections.
func (c *Connector) Pragmas() []string {
	out := make([]string, len(c.pragmas))
	copy(out, c.pragmas)
	return out
}

// executeStatement runs a statement without arguments on a raw connection
func (c *Connector) executeStatement(ctx context.Context, conn driver.Conn, query string) error {
	if execer, ok := conn.(driver.ExecerContext); ok {
		_, err := execer.ExecContext(ctx, query, nil)
		return err
	}

	prepCtx, ok := conn.(driver.ConnPrepareContext)
	if !ok {
		return ErrPrepareContextNotSupported
	}
	stmt, err := prepCtx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	stmtExec, ok := stmt.(driver.StmtExecContext)
	if !ok {
		return ErrStmtExecContextNotSupported
	}
	_, err = stmtExec.ExecContext(ctx, nil)
	return err
}

// Close releases the in-memory database.
func (conn *Connection) Close() error {
	if conn.conn != nil {
		return conn.conn.Close()
	}
	return nil
}

// Begin starts a transaction with default options.
func (conn *Connection) Begin() (driver.Tx, error) {
	return conn.BeginTx(context.Background(), driver.TxOptions{})
}

// BeginTx starts a transaction on the underlying SQLite connection.
func (conn *Connection) BeginTx(ctx context.Context, opts driver.TxOptions) (driver.Tx, error) {
	if connBeginTx, ok := conn.conn.(driver.ConnBeginTx); ok {
		tx, err := connBeginTx.BeginTx(ctx, opts)
		if err != nil {
			return nil, err
		}
		return &Transaction{tx: tx}, nil
	}
	return nil, ErrBeginTxNotSupported
}

// Commit commits the transaction.
func (t *Transaction) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction.
func (t *Transaction) Rollback() error {
	return t.tx.Rollback()
}

// Prepare prepares query without a context.
func (conn *Connection) Prepare(query string) (driver.Stmt, error) {
	return conn.PrepareContext(context.Background(), query)
}

// PrepareContext prepares query on the SQLite connection.
func (conn *Connection) PrepareContext(ctx context.Context, query string) (driver.Stmt, error) {
	if connPrepareCtx, ok := conn.conn.(driver.ConnPrepareContext); ok {
		return connPrepareCtx.PrepareContext(ctx, query)
	}
	return nil, ErrPrepareContextNotSupported
}

// ExecContext runs a statement directly on the SQLite connection.
func (conn *Connection) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if execer, ok := conn.conn.(driver.ExecerContext); ok {
		return execer.ExecContext(ctx, query, args)
	}
	return nil, driver.ErrSkip
}

// QueryContext runs query directly on the SQLite connection.
func (conn *Connection) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if queryer, ok := conn.conn.(driver.QueryerContext); ok {
		return queryer.QueryContext(ctx, query, args)
	}
	return nil, driver.ErrSkip
}
