package sqlcsv

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/sqlcsv/domain/model"
)

// utf8BOM is stripped from the start of delimited sources
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// rowReader yields the data rows of one opened source in file order.
type rowReader interface {
	// next returns the next row, or io.EOF after the last one
	next() (model.Record, error)
	close() error
}

// rowSource opens one input format. open consumes the header and returns
// a reader positioned at the first data row.
type rowSource interface {
	open(r io.Reader) (model.Header, rowReader, error)
}

// loader turns input files into source tables.
type loader struct {
	noHeader bool
}

// newLoader creates a loader. When noHeader is set the first row of a
// delimited or XLSX source is data and columns are named col1..colN.
func newLoader(noHeader bool) *loader {
	return &loader{noHeader: noHeader}
}

// sourceFor picks the reader for the file's base format
func (l *loader) sourceFor(path string) rowSource {
	switch ft := model.DetectFileType(path); ft {
	case model.FileTypeXLSX:
		return &xlsxSource{noHeader: l.noHeader}
	case model.FileTypeParquet:
		return &parquetSource{}
	default:
		return &delimitedSource{delimiter: ft.Delimiter(), noHeader: l.noHeader}
	}
}

// load opens path and reads its header. Rows are not read yet: the
// returned table pulls them one at a time and must be closed. Header
// problems are reported here, before anything touches the store.
func (l *loader) load(path string, name model.TableName) (*sourceTable, error) {
	ec := newErrorContext("load", path).withTable(name.String())

	reader, cleanup, err := openSource(path)
	if err != nil {
		return nil, ec.wrap(ErrIOFailure, err)
	}

	header, rows, err := l.sourceFor(path).open(reader)
	if err != nil {
		_ = cleanup()
		return nil, classifyLoadError(ec, err)
	}
	return newSourceTable(name, path, header, rows).withCleanup(cleanup), nil
}

// classifyLoadError wraps err with the kind a rowSource decided, or
// ErrIOFailure when the error came from reading the file itself.
func classifyLoadError(ec *errorContext, err error) error {
	var loadErr *loadError
	if errors.As(err, &loadErr) {
		if loadErr.details != "" {
			ec = ec.withDetails("%s", loadErr.details)
		}
		return ec.wrap(loadErr.kind, loadErr.cause)
	}
	return ec.wrap(ErrIOFailure, err)
}

// loadError carries the error kind decided by a rowSource
type loadError struct {
	kind    error
	cause   error
	details string
}

func (e *loadError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%v: %v", e.kind, e.cause)
	}
	return e.kind.Error()
}

func (e *loadError) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func emptySchema(details string) error {
	return &loadError{kind: ErrEmptySchema, details: details}
}

func malformed(cause error, format string, args ...any) error {
	return &loadError{kind: ErrMalformedRow, cause: cause, details: fmt.Sprintf(format, args...)}
}

// checkHeader maps header validation failures to error kinds: a header
// with no usable names is an empty schema, duplicates are malformed.
func checkHeader(h model.Header) error {
	err := h.Validate()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, model.ErrDuplicateColumnName):
		return malformed(err, "header")
	default:
		return &loadError{kind: ErrEmptySchema, cause: err}
	}
}

// delimitedSource reads CSV and TSV input.
type delimitedSource struct {
	delimiter rune
	noHeader  bool
}

func (s *delimitedSource) open(r io.Reader) (model.Header, rowReader, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	csvReader := csv.NewReader(br)
	csvReader.Comma = s.delimiter
	csvReader.FieldsPerRecord = 0

	first, err := csvReader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, emptySchema("no header row")
	}
	if err != nil {
		return nil, nil, readError(err)
	}

	rows := &delimitedRows{reader: csvReader}
	if s.noHeader {
		rows.pending = model.NewRecord(first)
		return model.SyntheticHeader(len(first)), rows, nil
	}

	header := model.NewHeader(first)
	if err := checkHeader(header); err != nil {
		return nil, nil, err
	}
	return header, rows, nil
}

// delimitedRows pulls records from an encoding/csv reader. The reader
// enforces that every record is as wide as the first one.
type delimitedRows struct {
	reader *csv.Reader
	// pending is a first row read while sizing the header
	pending model.Record
}

func (r *delimitedRows) next() (model.Record, error) {
	if r.pending != nil {
		rec := r.pending
		r.pending = nil
		return rec, nil
	}
	row, err := r.reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, readError(err)
	}
	return model.NewRecord(row), nil
}

func (r *delimitedRows) close() error {
	return nil
}

// readError classifies an encoding/csv error
func readError(err error) error {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return malformed(parseErr.Err, "line %d", parseErr.Line)
	}
	return err
}
