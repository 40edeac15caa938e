package rbridge

import "errors"

// Sentinel errors for bridge operations. Callers should use errors.Is.
var (
	// ErrRscript indicates the Rscript executable could not be found or
	// started at the configured path.
	ErrRscript = errors.New("rbridge: Rscript executable not available")
	// ErrBridge indicates the invocation itself failed (killed process,
	// cancelled context) without an R condition being signalled.
	ErrBridge = errors.New("rbridge: Rscript invocation failed")
	// ErrDecode indicates the bridge output was not the expected JSON shape.
	ErrDecode = errors.New("rbridge: cannot decode bridge output")
)

// RError carries an R condition message verbatim. The message is exactly
// what conditionMessage() produced on the R side, never rephrased, so
// callers see the external package's own diagnostics (e.g. its year-range
// message). Use errors.As to retrieve it.
type RError struct {
	Message string
}

// Error implements error.
func (e *RError) Error() string { return "rbridge: R error: " + e.Message }

// Compile-time check that RError implements error.
var _ error = (*RError)(nil)
