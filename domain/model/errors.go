package model

import "errors"

var (
	// ErrDuplicateColumnName is returned when a header contains duplicate column names
	ErrDuplicateColumnName = errors.New("duplicate column name")

	// ErrBlankColumnName is returned when a header contains an empty column name
	ErrBlankColumnName = errors.New("blank column name")

	// ErrNoColumns is returned when a header has no columns at all
	ErrNoColumns = errors.New("header has no columns")
)
