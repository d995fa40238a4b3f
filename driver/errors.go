package driver

import "errors"

// Predefined errors
var (
	// ErrStmtExecContextNotSupported is returned when statement does not support ExecContext
	ErrStmtExecContextNotSupported = errors.New("sqlcsv driver: statement does not support ExecContext")

	// ErrBeginTxNotSupported is returned when underlying connection does not support BeginTx
	ErrBeginTxNotSupported = errors.New("sqlcsv driver: underlying connection does not support BeginTx")

	// ErrPrepareContextNotSupported is returned when underlying connection does not support PrepareContext
	ErrPrepareContextNotSupported = errors.New("sqlcsv driver: underlying connection does not support PrepareContext")

	// ErrInvalidPragma is returned when a configured pragma is not a single PRAGMA assignment
	ErrInvalidPragma = errors.New("sqlcsv driver: invalid pragma")
)
