package sqlcsv

import "github.com/nao1215/sqlcsv/domain/model"

// Processing constants (rows-based)
const (
	// DefaultBatchSize is the number of rows sent in one multi-row INSERT
	DefaultBatchSize = 300
	// MinBatchSize is the minimum allowed rows per INSERT
	MinBatchSize = 1
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV files
	tsvDelimiter = '\t'
)

// TableReport describes how one source was loaded.
type TableReport struct {
	// Name is the table the source was loaded into, e.g. table1
	Name string
	// Path is the source file path as given
	Path string
	// Columns is the header used for the table
	Columns []string
	// Rows is the number of data rows inserted
	Rows int
	// Batches is the number of INSERT statements executed
	Batches int
}

// Report summarises one Pipeline.Run.
type Report struct {
	// Tables lists the loaded tables in load order
	Tables []TableReport
	// Columns is the header written for the result set
	Columns []string
	// ResultRows is the number of data rows written
	ResultRows int
}

// ResultSet is the full result of a query: a header choice and the rows
// as returned by the store.
type ResultSet struct {
	// Columns is the header of the result
	Columns model.ResultColumns
	// Rows holds the raw values, one slice per row
	Rows [][]any
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	return len(rs.Rows)
}
