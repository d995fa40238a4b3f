package sqlcsv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/apache/arrow/go/v18/parquet"
	pqfile "github.com/apache/arrow/go/v18/parquet/file"
	"github.com/apache/arrow/go/v18/parquet/pqarrow"
	"github.com/nao1215/sqlcsv/domain/model"
)

// parquetBatchRows is the number of rows decoded per arrow record batch
const parquetBatchRows = 1024

// parquetSource reads a Parquet file. Column names come from the schema,
// so header mode does not apply. Null values load as empty strings.
type parquetSource struct{}

func (s *parquetSource) open(r io.Reader) (model.Header, rowReader, error) {
	input, size, err := parquetInput(r)
	if err != nil {
		return nil, nil, err
	}
	if size == 0 {
		return nil, nil, emptySchema("empty parquet file")
	}

	pqReader, err := pqfile.NewParquetReader(input)
	if err != nil {
		return nil, nil, malformed(err, "parquet footer")
	}

	arrowReader, err := pqarrow.NewFileReader(pqReader,
		pqarrow.ArrowReadProperties{BatchSize: parquetBatchRows}, memory.DefaultAllocator)
	if err != nil {
		_ = pqReader.Close()
		return nil, nil, malformed(err, "arrow schema")
	}

	schema, err := arrowReader.Schema()
	if err != nil {
		_ = pqReader.Close()
		return nil, nil, malformed(err, "arrow schema")
	}
	header := make(model.Header, schema.NumFields())
	for i, field := range schema.Fields() {
		header[i] = field.Name
	}
	if err := checkHeader(header); err != nil {
		_ = pqReader.Close()
		return nil, nil, err
	}

	recordReader, err := arrowReader.GetRecordReader(context.Background(), nil, nil)
	if err != nil {
		_ = pqReader.Close()
		return nil, nil, malformed(err, "read records")
	}
	return header, &parquetRows{file: pqReader, records: recordReader}, nil
}

// parquetInput returns random access to the file. An uncompressed file
// is used in place; a decompressed stream has to be buffered.
func parquetInput(r io.Reader) (parquet.ReaderAtSeeker, int64, error) {
	if ras, ok := r.(parquet.ReaderAtSeeker); ok {
		size, err := ras.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to size parquet data: %w", err)
		}
		if _, err := ras.Seek(0, io.SeekStart); err != nil {
			return nil, 0, fmt.Errorf("failed to rewind parquet data: %w", err)
		}
		return ras, size, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read parquet data: %w", err)
	}
	return bytes.NewReader(data), int64(len(data)), nil
}

// parquetRows renders one arrow record batch at a time as text rows.
type parquetRows struct {
	file    *pqfile.Reader
	records pqarrow.RecordReader
	batch   arrow.Record
	row     int
}

func (r *parquetRows) next() (model.Record, error) {
	for r.batch == nil || r.row >= int(r.batch.NumRows()) {
		if !r.records.Next() {
			if err := r.records.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, malformed(err, "read records")
			}
			return nil, io.EOF
		}
		r.batch = r.records.Record()
		r.row = 0
	}

	cols := r.batch.Columns()
	rec := make(model.Record, len(cols))
	for j, col := range cols {
		if !col.IsNull(r.row) {
			rec[j] = col.ValueStr(r.row)
		}
	}
	r.row++
	return rec, nil
}

func (r *parquetRows) close() error {
	r.records.Release()
	return r.file.Close()
}
