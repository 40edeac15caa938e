package schooldata

import (
	"errors"
	"fmt"
)

// Sentinel errors for the adapter layer. All use prefix "schooldata:" for
// identification. Callers should use errors.Is/errors.As.
//
// Failures raised by the external package itself are never wrapped in these;
// they pass through Client untouched.
var (
	ErrConversion    = errors.New("schooldata: cannot convert external table")
	ErrEmptyTable    = errors.New("schooldata: external table has no columns")
	ErrMissingColumn = errors.New("schooldata: required column missing")
)

// ConversionError wraps ErrConversion with the column that could not be
// expressed in the target table type. Use errors.Is(err, ErrConversion) and
// errors.As(err, &convErr) to inspect.
type ConversionError struct {
	Column string
	Type   ColumnType
	Err    error
}

// Error implements error.
func (e *ConversionError) Error() string {
	return fmt.Sprintf("schooldata: column %q (%s): %v", e.Column, e.Type, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/errors.As.
func (e *ConversionError) Unwrap() error { return e.Err }

// Compile-time check that ConversionError implements error.
var _ error = (*ConversionError)(nil)
