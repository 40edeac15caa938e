package schooldata

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/enrollment.yaml
var testdataFS embed.FS

// fixture is the county seed data the fake source synthesizes tables from.
type fixture struct {
	MinYear  int `yaml:"min_year"`
	MaxYear  int `yaml:"max_year"`
	Counties []struct {
		Name     string `yaml:"name"`
		Students int    `yaml:"n_students"`
	} `yaml:"counties"`
}

func loadFixture(t *testing.T) fixture {
	t.Helper()
	data, err := testdataFS.ReadFile("testdata/enrollment.yaml")
	require.NoError(t, err)
	var fx fixture
	require.NoError(t, yaml.Unmarshal(data, &fx))
	require.NotEmpty(t, fx.Counties)
	return fx
}

// gradeOrder mirrors the external package's grade_level levels: the TOTAL
// aggregate first, then PK through 12.
var gradeOrder = []string{"TOTAL", "PK", "KG", "01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}

// errYearRange stands in for the external package's own range assertion; the
// adapter must return it untouched.
var errYearRange = errors.New("Assertion on 'end_year' failed: Element 1 is not >= 2012")

// fakeSource is an in-memory Source built from the YAML fixture. It mimics
// the external package's observable behavior: deterministic tables keyed by
// year, a range error outside the fixture bounds, and a configurable tidy
// result so upstream defects and failures can be replayed.
type fakeSource struct {
	fx fixture

	mu         sync.Mutex
	fetchCalls int
	yearCalls  int

	emptyErr error                      // returned by FetchYears([]) when set
	tidyFn   func(Table) (Table, error) // overrides the default reshape
	yearErr  error                      // returned once by YearBounds when set
}

var _ Source = (*fakeSource)(nil)

func newFakeSource(t *testing.T) *fakeSource {
	return &fakeSource{fx: loadFixture(t)}
}

func (f *fakeSource) FetchYear(ctx context.Context, year int) (Table, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.mu.Unlock()
	if year < f.fx.MinYear || year > f.fx.MaxYear {
		return Table{}, errYearRange
	}
	return f.buildTable([]int{year}), nil
}

func (f *fakeSource) FetchYears(ctx context.Context, years []int) (Table, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.mu.Unlock()
	if len(years) == 0 && f.emptyErr != nil {
		return Table{}, f.emptyErr
	}
	for _, y := range years {
		if y < f.fx.MinYear || y > f.fx.MaxYear {
			return Table{}, errYearRange
		}
	}
	return f.buildTable(years), nil
}

func (f *fakeSource) Tidy(ctx context.Context, t Table) (Table, error) {
	if f.tidyFn != nil {
		return f.tidyFn(t)
	}
	// Default reshape: grade_level becomes the subgroup column; everything
	// else is carried over.
	out := Table{}
	for _, c := range t.Columns {
		if c.Name == "grade_level" {
			c.Name = "subgroup"
		}
		out.Columns = append(out.Columns, c)
	}
	return out, nil
}

func (f *fakeSource) YearBounds(ctx context.Context) (YearRange, error) {
	f.mu.Lock()
	f.yearCalls++
	err := f.yearErr
	f.yearErr = nil
	f.mu.Unlock()
	if err != nil {
		return YearRange{}, err
	}
	return YearRange{MinYear: f.fx.MinYear, MaxYear: f.fx.MaxYear}, nil
}

// buildTable synthesizes the wide enrollment table: per year, one TOTAL row
// and one row per grade for each county, then the statewide aggregate rows.
// Deterministic so idempotence tests can compare repeated fetches.
func (f *fakeSource) buildTable(years []int) Table {
	var endYear, nStudents, district, grade, schoolYear, isState []any
	appendRow := func(year int, name string, g string, n any, state bool) {
		endYear = append(endYear, year)
		schoolYear = append(schoolYear, fmt.Sprintf("%d-%02d", year-1, year%100))
		district = append(district, name)
		isState = append(isState, state)
		grade = append(grade, g)
		nStudents = append(nStudents, n)
	}
	for _, year := range years {
		stateByGrade := make(map[string]int)
		for _, county := range f.fx.Counties {
			perGrade := county.Students / (len(gradeOrder) - 1)
			appendRow(year, county.Name, "TOTAL", county.Students, false)
			stateByGrade["TOTAL"] += county.Students
			for _, g := range gradeOrder[1:] {
				// Small counties report a suppressed PK count.
				if g == "PK" && county.Students < 1000 {
					appendRow(year, county.Name, g, nil, false)
					continue
				}
				appendRow(year, county.Name, g, perGrade, false)
				stateByGrade[g] += perGrade
			}
		}
		for _, g := range gradeOrder {
			appendRow(year, "West Virginia", g, stateByGrade[g], true)
		}
	}
	return Table{Columns: []Column{
		{Name: "end_year", Type: TypeInteger, Values: endYear},
		{Name: "school_year", Type: TypeCharacter, Values: schoolYear},
		{Name: "district", Type: TypeCharacter, Values: district},
		{Name: "is_state", Type: TypeLogical, Values: isState},
		{Name: "grade_level", Type: TypeFactor, Values: grade},
		{Name: "n_students", Type: TypeInteger, Values: nStudents},
	}}
}
