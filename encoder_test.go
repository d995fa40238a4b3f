package sqlcsv

import (
	"bytes"
	"encoding/csv"
	"math"
	"testing"
	"time"

	"github.com/nao1215/sqlcsv/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{name: "nil", value: nil, want: ""},
		{name: "text", value: "hello", want: "hello"},
		{name: "utf8 blob", value: []byte("héllo"), want: "héllo"},
		{name: "binary blob", value: []byte{0xff, 0xfe, 0x00}, wantErr: true},
		{name: "integer", value: int64(-42), want: "-42"},
		{name: "real", value: 2.5, want: "2.5"},
		{name: "integral real", value: 3.0, want: "3.0"},
		{name: "large real", value: 1e21, want: "1e+21"},
		{name: "infinity", value: math.Inf(1), want: "Inf"},
		{name: "bool", value: true, want: "1"},
		{name: "time", value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), want: "2024-01-02T03:04:05Z"},
		{name: "unsupported", value: struct{}{}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := decodeValue(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResultEncoder_EscapeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		delimiter rune
		value     string
		want      string
	}{
		{name: "plain", delimiter: ',', value: "abc", want: "abc"},
		{name: "empty", delimiter: ',', value: "", want: ""},
		{name: "comma", delimiter: ',', value: "x,y", want: `"x,y"`},
		{name: "quote", delimiter: ',', value: `a"b`, want: `"a""b"`},
		{name: "newline", delimiter: ',', value: "a\nb", want: "\"a\nb\""},
		{name: "carriage return", delimiter: ',', value: "a\rb", want: "\"a\rb\""},
		{name: "tab in csv", delimiter: ',', value: "a\tb", want: "a\tb"},
		{name: "tab in tsv", delimiter: '\t', value: "a\tb", want: "\"a\tb\""},
		{name: "comma in tsv", delimiter: '\t', value: "x,y", want: "x,y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, newResultEncoder(tt.delimiter).escapeValue(tt.value))
		})
	}
}

func TestResultEncoder_Encode(t *testing.T) {
	t.Parallel()

	t.Run("named columns", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{
			Columns: model.NamedColumns([]string{"a", "b"}),
			Rows:    [][]any{{"1", "2"}, {"x,y", nil}},
		}
		got, err := newResultEncoder(',').encode(rs)
		require.NoError(t, err)
		assert.Equal(t, "a,b\n1,2\n\"x,y\",\n", string(got))
	})

	t.Run("synthetic columns", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{
			Columns: model.SyntheticColumns(2),
			Rows:    [][]any{{int64(1), 2.0}},
		}
		got, err := newResultEncoder(',').encode(rs)
		require.NoError(t, err)
		assert.Equal(t, "col1,col2\n1,2.0\n", string(got))
	})

	t.Run("tab delimiter", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{
			Columns: model.NamedColumns([]string{"a", "b"}),
			Rows:    [][]any{{"x,y", "z"}},
		}
		got, err := newResultEncoder('\t').encode(rs)
		require.NoError(t, err)
		assert.Equal(t, "a\tb\nx,y\tz\n", string(got))
	})

	t.Run("non-text value", func(t *testing.T) {
		t.Parallel()

		rs := &ResultSet{
			Columns: model.NamedColumns([]string{"a"}),
			Rows:    [][]any{{"ok"}, {[]byte{0xff}}},
		}
		_, err := newResultEncoder(',').encode(rs)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNonTextValue)
		assert.Contains(t, err.Error(), "row 2 column 1")
	})
}

func TestResultEncoder_QuotingRoundTrip(t *testing.T) {
	t.Parallel()

	values := []string{"plain", "x,y", `say "hi"`, "two\nlines", "", "trailing,", `"`, "a\r\nb"}
	rows := make([][]any, len(values))
	for i, v := range values {
		rows[i] = []any{v, "k"}
	}
	rs := &ResultSet{Columns: model.NamedColumns([]string{"v", "k"}), Rows: rows}

	data, err := newResultEncoder(',').encode(rs)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, len(values)+1)
	for i, v := range values {
		want := v
		if v == "a\r\nb" {
			want = "a\nb" // encoding/csv normalises \r\n inside quoted fields
		}
		assert.Equal(t, want, records[i+1][0])
	}
}
