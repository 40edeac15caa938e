package rbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRIntVector(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		years []int
		want  string
	}{
		{"empty", nil, "integer(0)"},
		{"single", []int{2024}, "2024L"},
		{"many", []int{2022, 2023, 2024}, "c(2022L, 2023L, 2024L)"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, rIntVector(tt.years))
		})
	}
}

func TestScriptFetchYear(t *testing.T) {
	t.Parallel()
	s := scriptFetchYear(2024)
	assert.Contains(t, s, "library(wvschooldata)")
	assert.Contains(t, s, "fetch_enr(2024L)")
	assert.Contains(t, s, "tryCatch")
	assert.Contains(t, s, "status = 10")
	assert.Contains(t, s, `na = "null"`)
}

func TestScriptFetchYears_EmptyForwardedVerbatim(t *testing.T) {
	t.Parallel()
	assert.Contains(t, scriptFetchYears(nil), "fetch_enr_multi(integer(0))")
}

func TestScriptTidy(t *testing.T) {
	t.Parallel()
	s := scriptTidy()
	assert.Contains(t, s, `tidy_enr(dec(file("stdin")))`)
	assert.Contains(t, s, "dec <- function(con)")
	assert.Contains(t, s, "enc <- function(df)")
}

func TestScriptYearBounds(t *testing.T) {
	t.Parallel()
	s := scriptYearBounds()
	assert.Contains(t, s, "get_available_years()")
	assert.Contains(t, s, "min_year")
	assert.Contains(t, s, "max_year")
}
