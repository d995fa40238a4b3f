package sqlcsv

import (
	"errors"
	"io"
	"strings"

	"github.com/nao1215/sqlcsv/domain/model"
)

// columnDefinition is the definition used for every loaded column.
// TEXT keeps values exactly as read.
const columnDefinition = "TEXT NOT NULL DEFAULT ''"

// sourceTable represents file contents as database table structure.
type sourceTable struct {
	// name is the positional table name
	name model.TableName
	// path is the file the table was read from
	path string
	// header is table header.
	header model.Header
	// rows yields the data rows; each row is read once and not kept.
	rows rowReader
	// cleanup releases the underlying file
	cleanup func() error
}

// newSourceTable create new sourceTable.
func newSourceTable(name model.TableName, path string, header model.Header, rows rowReader) *sourceTable {
	return &sourceTable{
		name:    name,
		path:    path,
		header:  header,
		rows:    rows,
		cleanup: noopClose,
	}
}

// withCleanup sets the function that releases the source file.
func (t *sourceTable) withCleanup(cleanup func() error) *sourceTable {
	t.cleanup = cleanup
	return t
}

// next returns the next data row, or io.EOF when the source is exhausted.
// Read failures carry the file and table they came from.
func (t *sourceTable) next() (model.Record, error) {
	rec, err := t.rows.next()
	if err == nil || errors.Is(err, io.EOF) {
		return rec, err
	}
	return nil, classifyLoadError(newErrorContext("load", t.path).withTable(t.name.String()), err)
}

// close releases the row reader and the file behind it.
func (t *sourceTable) close() error {
	var err error
	if t.rows != nil {
		err = t.rows.close()
	}
	if cleanupErr := t.cleanup(); err == nil {
		err = cleanupErr
	}
	return err
}

// createStatement returns the CREATE TABLE statement for the table.
func (t *sourceTable) createStatement() string {
	cols := make([]string, len(t.header))
	for i, col := range t.header {
		cols[i] = model.QuoteIdentifier(strings.TrimSpace(col)) + " " + columnDefinition
	}
	return "CREATE TABLE " + t.name.Quoted() + " (" + strings.Join(cols, ", ") + ")"
}

// quotedColumns returns the column list used in INSERT statements.
func (t *sourceTable) quotedColumns() string {
	cols := make([]string, len(t.header))
	for i, col := range t.header {
		cols[i] = model.QuoteIdentifier(strings.TrimSpace(col))
	}
	return strings.Join(cols, ", ")
}
