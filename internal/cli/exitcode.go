package cli

import (
	"errors"

	"github.com/nao1215/sqlcsv"
)

// Exit codes
const (
	ExitSuccess          = 0  // Query ran and the result was written
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags or config)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitEmptySchema      = 10 // Input has no usable header
	ExitMalformedRow     = 11 // Input row could not be parsed
	ExitStoreWriteFailed = 12 // Store rejected CREATE or INSERT
	ExitQueryFailed      = 13 // Store rejected the query
	ExitNoRows           = 14 // Query returned no rows
	ExitNonTextValue     = 15 // Result value could not be rendered as text
	ExitIOFailure        = 16 // Input unreadable or output unwritable
)

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("usage error")

// ExitCodeForError maps an error returned by Execute to a process exit code.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage), errors.Is(err, sqlcsv.ErrInvalidOption):
		return ExitUsageError
	case errors.Is(err, sqlcsv.ErrEmptySchema):
		return ExitEmptySchema
	case errors.Is(err, sqlcsv.ErrMalformedRow):
		return ExitMalformedRow
	case errors.Is(err, sqlcsv.ErrStoreWriteFailed):
		return ExitStoreWriteFailed
	case errors.Is(err, sqlcsv.ErrQueryFailed):
		return ExitQueryFailed
	case errors.Is(err, sqlcsv.ErrNoRows):
		return ExitNoRows
	case errors.Is(err, sqlcsv.ErrNonTextValue):
		return ExitNonTextValue
	case errors.Is(err, sqlcsv.ErrIOFailure):
		return ExitIOFailure
	}
	return ExitGeneralError
}
