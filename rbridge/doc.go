// Package rbridge drives the R wvschooldata package through one-shot Rscript
// invocations. Each call generates a small R script that loads the package,
// calls the target function, and writes the result column-wise as jsonlite
// JSON on stdout; tables travelling into R (Tidy) go in on stdin. R condition
// messages come back verbatim as RError.
//
// Session is the production schooldata.Source.
package rbridge
