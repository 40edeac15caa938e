// Package schooldata bridges the R wvschooldata package into Go. It forwards
// enrollment-fetch calls to the external package, converts the returned
// data.frame column by column into a gota DataFrame, and propagates external
// errors without alteration. All retrieval, parsing, and year-range logic is
// owned by the R side; this layer only adapts shapes and types.
package schooldata
