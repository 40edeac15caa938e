package rbridge

import (
	"fmt"
	"strconv"
	"strings"
)

// rErrorStatus is the exit code the generated script uses when an R
// condition was caught; run translates it to RError with the stderr text.
const rErrorStatus = 10

// rEnc serializes a data.frame column-wise, preserving R storage types.
// jsonlite::unbox keeps name/type scalar while values stay arrays even for
// one-row tables.
const rEnc = `enc <- function(df) list(columns = lapply(names(df), function(n) {
  v <- df[[n]]
  t <- if (is.factor(v)) "factor"
    else if (is.integer(v)) "integer"
    else if (is.logical(v)) "logical"
    else if (is.double(v)) "double"
    else "character"
  list(name = jsonlite::unbox(n), type = jsonlite::unbox(t),
       values = if (is.factor(v)) as.character(v) else v)
}))
`

// rDec rebuilds a data.frame from the column-wise JSON on a connection.
const rDec = `dec <- function(con) {
  p <- jsonlite::fromJSON(con, simplifyVector = FALSE)
  cols <- lapply(p$columns, function(col) {
    v <- unlist(lapply(col$values, function(x) if (is.null(x)) NA else x))
    switch(col$type,
      integer = as.integer(v),
      double = as.double(v),
      logical = as.logical(v),
      factor = factor(v),
      as.character(v))
  })
  names(cols) <- vapply(p$columns, function(col) col$name, character(1))
  as.data.frame(cols, stringsAsFactors = FALSE, check.names = FALSE)
}
`

const rYearBounds = `{
  yrs <- as.list(get_available_years())
  if (is.null(yrs$min_year)) names(yrs) <- c("min_year", "max_year")
  list(min_year = jsonlite::unbox(as.integer(yrs$min_year)),
       max_year = jsonlite::unbox(as.integer(yrs$max_year)))
}`

// renderScript wraps an expression in the bridge protocol: load the package,
// evaluate, emit JSON on stdout; on any condition, emit the message verbatim
// on stderr and exit with rErrorStatus.
func renderScript(prelude, expr, out string) string {
	var b strings.Builder
	b.WriteString("tryCatch({\n")
	b.WriteString("  suppressPackageStartupMessages(library(wvschooldata))\n")
	if prelude != "" {
		b.WriteString(prelude)
	}
	fmt.Fprintf(&b, "  res <- %s\n", expr)
	fmt.Fprintf(&b, "  cat(jsonlite::toJSON(%s, na = \"null\", digits = NA))\n", out)
	b.WriteString("}, error = function(e) {\n")
	b.WriteString("  cat(conditionMessage(e), file = stderr())\n")
	fmt.Fprintf(&b, "  quit(save = \"no\", status = %d)\n", rErrorStatus)
	b.WriteString("})")
	return b.String()
}

func scriptFetchYear(year int) string {
	return renderScript(rEnc, fmt.Sprintf("fetch_enr(%dL)", year), "enc(res)")
}

func scriptFetchYears(years []int) string {
	return renderScript(rEnc, fmt.Sprintf("fetch_enr_multi(%s)", rIntVector(years)), "enc(res)")
}

func scriptTidy() string {
	return renderScript(rEnc+rDec, `tidy_enr(dec(file("stdin")))`, "enc(res)")
}

func scriptYearBounds() string {
	return renderScript("", rYearBounds, "res")
}

// rIntVector renders years as an R integer vector literal. An empty slice
// becomes integer(0) so the external package sees exactly what an R caller
// passing zero years would send.
func rIntVector(years []int) string {
	switch len(years) {
	case 0:
		return "integer(0)"
	case 1:
		return strconv.Itoa(years[0]) + "L"
	}
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = strconv.Itoa(y) + "L"
	}
	return "c(" + strings.Join(parts, ", ") + ")"
}
