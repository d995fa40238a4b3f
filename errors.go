package sqlcsv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/sqlcsv/domain/model"
)

// Error kinds. Every error returned by a Pipeline wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	// ErrEmptySchema indicates that a source has no header row or a header
	// without usable column names
	ErrEmptySchema = errors.New("sqlcsv: empty schema")

	// ErrMalformedRow indicates that a source row could not be parsed
	ErrMalformedRow = errors.New("sqlcsv: malformed row")

	// ErrStoreWriteFailed indicates that the store rejected a CREATE or INSERT statement
	ErrStoreWriteFailed = errors.New("sqlcsv: store write failed")

	// ErrQueryFailed indicates that the store rejected the user query
	ErrQueryFailed = errors.New("sqlcsv: query failed")

	// ErrNoRows indicates that the query returned zero rows
	ErrNoRows = errors.New("sqlcsv: no records returned for query")

	// ErrNonTextValue indicates a result value that cannot be rendered as text
	ErrNonTextValue = errors.New("sqlcsv: non-text value in result")

	// ErrIOFailure indicates that a source could not be read or the output could not be written
	ErrIOFailure = errors.New("sqlcsv: i/o failure")

	// ErrInvalidOption is returned by Build when the builder is misconfigured
	ErrInvalidOption = errors.New("sqlcsv: invalid option")

	// ErrDuplicateColumnName is returned when a header contains the same column twice
	ErrDuplicateColumnName = model.ErrDuplicateColumnName
)

// errBlankQuery is returned for a query with no text
var errBlankQuery = errors.New("query is blank")

// errorContext provides context for where an error occurred
type errorContext struct {
	operation string
	filePath  string
	tableName string
	details   string
}

// newErrorContext creates a new error context
func newErrorContext(operation, filePath string) *errorContext {
	return &errorContext{
		operation: operation,
		filePath:  filePath,
	}
}

// withTable adds table context to the error
func (ec *errorContext) withTable(tableName string) *errorContext {
	ec.tableName = tableName
	return ec
}

// withDetails adds details to the error context
func (ec *errorContext) withDetails(format string, args ...any) *errorContext {
	ec.details = fmt.Sprintf(format, args...)
	return ec
}

// wrap creates a formatted error that wraps kind and, when present, cause.
func (ec *errorContext) wrap(kind, cause error) error {
	parts := []string{ec.operation + " failed"}

	if ec.filePath != "" {
		parts = append(parts, "file: "+ec.filePath)
	}
	if ec.tableName != "" {
		parts = append(parts, "table: "+ec.tableName)
	}
	if ec.details != "" {
		parts = append(parts, "details: "+ec.details)
	}

	context := strings.Join(parts, ", ")
	if cause != nil {
		return fmt.Errorf("%w: %s: %w", kind, context, cause)
	}
	return fmt.Errorf("%w: %s", kind, context)
}
