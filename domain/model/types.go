// Package model provides domain model for sqlcsv
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// syntheticColumnPrefix is the prefix of generated column names (col1, col2, ...)
const syntheticColumnPrefix = "col"

// Header is the ordered list of column names of a source table.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// SyntheticHeader returns col1..colN.
func SyntheticHeader(count int) Header {
	h := make(Header, count)
	for i := range h {
		h[i] = syntheticColumnPrefix + strconv.Itoa(i+1)
	}
	return h
}

// Validate reports whether the header can be used as a column list in a
// CREATE TABLE statement. Column names are compared after trimming
// whitespace and ignoring ASCII case, as SQLite compares identifiers.
func (h Header) Validate() error {
	if len(h) == 0 {
		return ErrNoColumns
	}
	seen := make(map[string]bool, len(h))
	for i, col := range h {
		trimmed := strings.TrimSpace(col)
		if trimmed == "" {
			return fmt.Errorf("%w: column %d", ErrBlankColumnName, i+1)
		}
		key := foldIdentifier(trimmed)
		if seen[key] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		seen[key] = true
	}
	return nil
}

// foldIdentifier lowers ASCII letters only
func foldIdentifier(name string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, name)
}

// Record is one row of a source table.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Padded returns a copy of r extended with empty strings up to width.
// Records that are already wide enough are returned unchanged.
func (r Record) Padded(width int) Record {
	if len(r) >= width {
		return r
	}
	padded := make(Record, width)
	copy(padded, r)
	return padded
}
