package driver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxColumnCount defines the maximum number of columns allowed in a table.
// It matches the default SQLITE_MAX_COLUMN of the store.
const MaxColumnCount = 2000

// MaxBoundParameters is the largest number of bound parameters a single
// statement may carry.
const MaxBoundParameters = 32766

var (
	// ErrTooManyColumns is returned when a table has too many columns
	ErrTooManyColumns = errors.New("too many columns")

	// ErrInvalidPath is returned when a path is empty or contains a null byte
	ErrInvalidPath = errors.New("invalid path")
)

// pragmaPattern accepts "name", "name = value" and "name(value)".
var pragmaPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*\s*(=\s*[A-Za-z0-9_'"\-]+|\(\s*[A-Za-z0-9_'"\-]+\s*\))?$`)

// ValidatePath rejects paths that cannot name a file.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}
	if strings.Contains(path, "\x00") {
		return ErrInvalidPath
	}
	return nil
}

// ValidateColumnCount checks if the number of columns is within acceptable limits
func ValidateColumnCount(columnCount int) error {
	if columnCount > MaxColumnCount {
		return fmt.Errorf("%w: %d > %d", ErrTooManyColumns, columnCount, MaxColumnCount)
	}
	return nil
}

// ValidatePragma checks that p is a single pragma without the PRAGMA keyword,
// for example "journal_mode = OFF".
func ValidatePragma(p string) error {
	if !pragmaPattern.MatchString(strings.TrimSpace(p)) {
		return fmt.Errorf("%w: %q", ErrInvalidPragma, p)
	}
	return nil
}

// SanitizeForLog shortens long SQL text before it is logged.
func SanitizeForLog(input string) string {
	const maxLogLength = 200
	result := strings.Join(strings.Fields(input), " ")
	if len(result) > maxLogLength {
		result = result[:maxLogLength] + "..."
	}
	return result
}
