// Package csv error types.
package csv

import (
	"errors"

	"github.com/shapestone/simplecsv/internal/parser"
)

// ErrUnterminatedQuote is returned when a record ends while still inside
// quotes and the dialect does not allow unbalanced quotes. The error is
// fatal to that call only; the parser stays usable.
var ErrUnterminatedQuote = parser.ErrUnterminatedQuote

// ErrRecordNumber is returned by ParseNthRecord for a record number that
// is not positive.
var ErrRecordNumber = errors.New("record number must be greater than zero")

// Dialect invariant violations, carried inside *OptionsError.
var (
	ErrSeparatorUndefined = parser.ErrSeparatorUndefined
	ErrSameCharacters     = parser.ErrSameCharacters
	ErrQuoteRequired      = parser.ErrQuoteRequired
)

// OptionsError reports an invalid dialect at construction time.
// It wraps one of the invariant sentinels above.
type OptionsError struct {
	Err error
}

func (e *OptionsError) Error() string {
	return "csv: invalid options: " + e.Err.Error()
}

// Unwrap returns the underlying invariant violation.
func (e *OptionsError) Unwrap() error {
	return e.Err
}
