package schooldata

import "context"

// Version is the version of this bridge, independent of the wrapped R
// package's own version.
const Version = "0.1.0"

// YearRange holds the inclusive school-year bounds the external package can
// serve. Years follow the end-year convention: 2024 means the 2023-24 school
// year. The external package guarantees MinYear < MaxYear; this layer does
// not re-validate.
type YearRange struct {
	MinYear int `json:"min_year"`
	MaxYear int `json:"max_year"`
}

// Source is the consumed surface of the external wvschooldata package: one
// single-year fetch, one multi-year fetch, one wide-to-long reshape, and the
// year-bounds accessor. The production implementation is rbridge.Session;
// tests substitute an in-memory fake.
//
// Implementations must return their own failures as-is (an R condition
// message, a transport error); Client propagates them to callers unchanged.
type Source interface {
	// FetchYear returns the wide enrollment table for one end year.
	FetchYear(ctx context.Context, year int) (Table, error)
	// FetchYears returns the wide enrollment table for the given end years.
	// An empty slice is forwarded verbatim; the external package decides
	// between an empty table and an error.
	FetchYears(ctx context.Context, years []int) (Table, error)
	// Tidy reshapes a wide enrollment table into long format with a
	// subgroup column.
	Tidy(ctx context.Context, t Table) (Table, error)
	// YearBounds returns the supported year range.
	YearBounds(ctx context.Context) (YearRange, error)
}
