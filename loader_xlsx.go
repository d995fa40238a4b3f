package sqlcsv

import (
	"errors"
	"fmt"
	"io"

	"github.com/nao1215/sqlcsv/domain/model"
	"github.com/xuri/excelize/v2"
)

// errRowTooWide is reported when a row has more cells than the header
var errRowTooWide = errors.New("row has more cells than the header")

// xlsxSource reads the first sheet of an Excel workbook.
// Empty rows are skipped and short rows are padded with empty strings.
type xlsxSource struct {
	noHeader bool
}

func (s *xlsxSource) open(r io.Reader) (model.Header, rowReader, error) {
	xlsxFile, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, malformed(err, "open workbook")
	}

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		_ = xlsxFile.Close()
		return nil, nil, emptySchema("no sheets in workbook")
	}

	sheetName := sheetNames[0]
	iter, err := xlsxFile.Rows(sheetName)
	if err != nil {
		_ = xlsxFile.Close()
		return nil, nil, fmt.Errorf("failed to open rows iterator for sheet %s: %w", sheetName, err)
	}

	rows := &xlsxRows{file: xlsxFile, iter: iter, sheet: sheetName}
	first, err := rows.nextCells()
	if err != nil {
		_ = rows.close()
		if errors.Is(err, io.EOF) {
			return nil, nil, emptySchema("sheet " + sheetName + " has no rows")
		}
		return nil, nil, err
	}

	if s.noHeader {
		rows.width = len(first)
		rows.pending = model.NewRecord(first)
		return model.SyntheticHeader(len(first)), rows, nil
	}

	header := model.NewHeader(first)
	if err := checkHeader(header); err != nil {
		_ = rows.close()
		return nil, nil, err
	}
	rows.width = len(header)
	return header, rows, nil
}

// xlsxRows walks the sheet with excelize's streaming row iterator.
type xlsxRows struct {
	file    *excelize.File
	iter    *excelize.Rows
	sheet   string
	rowNum  int
	width   int
	pending model.Record
}

// nextCells returns the cells of the next non-empty row
func (r *xlsxRows) nextCells() ([]string, error) {
	for r.iter.Next() {
		r.rowNum++
		cells, err := r.iter.Columns()
		if err != nil {
			return nil, malformed(err, "sheet %s row %d", r.sheet, r.rowNum)
		}
		if len(cells) > 0 {
			return cells, nil
		}
	}
	if err := r.iter.Error(); err != nil {
		return nil, malformed(err, "sheet %s", r.sheet)
	}
	return nil, io.EOF
}

func (r *xlsxRows) next() (model.Record, error) {
	if r.pending != nil {
		rec := r.pending
		r.pending = nil
		return rec, nil
	}
	cells, err := r.nextCells()
	if err != nil {
		return nil, err
	}
	if len(cells) > r.width {
		return nil, malformed(errRowTooWide, "sheet %s row %d", r.sheet, r.rowNum)
	}
	return model.NewRecord(cells).Padded(r.width), nil
}

func (r *xlsxRows) close() error {
	iterErr := r.iter.Close()
	if err := r.file.Close(); err != nil {
		return err
	}
	return iterErr
}
