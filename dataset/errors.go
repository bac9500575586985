package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRows is returned when the input holds no data rows.
	ErrNoRows = errors.New("dataset: no data rows")

	// ErrFieldCount is returned when a row has a different number of fields
	// than the first row.
	ErrFieldCount = errors.New("dataset: wrong number of fields")

	// ErrNonFinite is returned for NaN and infinite values.
	ErrNonFinite = errors.New("dataset: value is not finite")

	// ErrHeaderLength is returned by Write when the header does not match
	// the number of columns.
	ErrHeaderLength = errors.New("dataset: header length does not match columns")
)

// FormatError reports a field that could not be parsed. Row and Col are
// 0-based; Row counts data rows only, the header is not included.
type FormatError struct {
	Row   int
	Col   int
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("dataset: row %d, column %d (%q): %v", e.Row, e.Col, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
