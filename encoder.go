package sqlcsv

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// resultEncoder renders a result set as delimited text.
type resultEncoder struct {
	delimiter rune
}

// newResultEncoder creates an encoder that separates fields with delimiter
func newResultEncoder(delimiter rune) *resultEncoder {
	return &resultEncoder{delimiter: delimiter}
}

// encode writes the header line followed by one line per row. Every line,
// including the last, ends with "\n".
func (e *resultEncoder) encode(rs *ResultSet) ([]byte, error) {
	var buf bytes.Buffer
	e.writeLine(&buf, rs.Columns.Names())

	fields := make([]string, rs.Columns.Len())
	for rowIdx, row := range rs.Rows {
		if len(row) != len(fields) {
			fields = make([]string, len(row))
		}
		for i, v := range row {
			s, err := decodeValue(v)
			if err != nil {
				return nil, newErrorContext("encode", "").
					withDetails("row %d column %d", rowIdx+1, i+1).
					wrap(ErrNonTextValue, err)
			}
			fields[i] = s
		}
		e.writeLine(&buf, fields)
	}
	return buf.Bytes(), nil
}

func (e *resultEncoder) writeLine(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteRune(e.delimiter)
		}
		buf.WriteString(e.escapeValue(f))
	}
	buf.WriteByte('\n')
}

// escapeValue quotes a value that contains the delimiter, a double quote,
// or a line break, doubling any embedded double quotes.
func (e *resultEncoder) escapeValue(value string) string {
	needsQuoting := strings.ContainsRune(value, e.delimiter) ||
		strings.ContainsAny(value, "\"\r\n")

	if needsQuoting {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}
	return value
}

// decodeValue converts a value returned by the store to its text form.
// NULL becomes the empty string.
func decodeValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case []byte:
		if !utf8.Valid(val) {
			return "", fmt.Errorf("%d bytes of non-UTF-8 data", len(val))
		}
		return string(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return formatReal(val), nil
	case bool:
		if val {
			return "1", nil
		}
		return "0", nil
	case time.Time:
		return val.Format(time.RFC3339Nano), nil
	default:
		return "", fmt.Errorf("unsupported value type %T", v)
	}
}

// formatReal renders a REAL the way SQLite prints it: integral values keep
// a trailing ".0".
func formatReal(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
