package model

import (
	"strconv"
	"strings"
)

// tableNamePrefix is the prefix of positional table names (table1, table2, ...)
const tableNamePrefix = "table"

// TableName represents the name a source is loaded under.
type TableName struct {
	value string
}

// NewTableName returns the positional name for the source at the given
// 1-based position: table1 for the first source, table2 for the second.
// Positions below 1 are treated as 1.
func NewTableName(position int) TableName {
	if position < 1 {
		position = 1
	}
	return TableName{value: tableNamePrefix + strconv.Itoa(position)}
}

// String returns the string representation of TableName
func (tn TableName) String() string {
	return tn.value
}

// Quoted returns the table name as a quoted SQL identifier.
func (tn TableName) Quoted() string {
	return QuoteIdentifier(tn.value)
}

// QuoteIdentifier quotes name as an SQL identifier, doubling any embedded
// double quote.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
