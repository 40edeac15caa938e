package schooldata

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-gota/gota/dataframe"
)

// requiredEnrollmentColumns must be present in every fetched enrollment
// table. Presence is checked after the external call; year-range validation
// stays with the external package.
var requiredEnrollmentColumns = []string{"end_year", "n_students", "grade_level"}

// Client is the adapter over a Source. It forwards each call, converts the
// returned table into a gota DataFrame, and validates shape on the way out.
// It holds no state between calls: no cache, no retries, no rate limiting.
// Safe for concurrent use iff the Source is.
type Client struct {
	source Source
	logger *slog.Logger
}

// NewClient wraps src. Panics if src is nil.
func NewClient(src Source, opts ...Option) *Client {
	if src == nil {
		panic("schooldata: Source must not be nil")
	}
	c := &Client{source: src, logger: slog.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchEnr returns the wide enrollment table for one end year. The year is
// forwarded as-is; an out-of-range year surfaces as the external package's
// own error.
func (c *Client) FetchEnr(ctx context.Context, year int) (dataframe.DataFrame, error) {
	t, err := c.source.FetchYear(ctx, year)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return c.enrollmentFrame(t)
}

// FetchEnrMulti returns the wide enrollment table for the given end years.
// A one-element slice yields the same rows as FetchEnr with that year. An
// empty slice is forwarded verbatim and its outcome (empty table or external
// error) surfaces unchanged.
func (c *Client) FetchEnrMulti(ctx context.Context, years []int) (dataframe.DataFrame, error) {
	if len(years) == 0 {
		c.logger.Debug("forwarding empty year list to external fetch")
	}
	t, err := c.source.FetchYears(ctx, years)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return c.enrollmentFrame(t)
}

// TidyEnr reshapes a wide enrollment table into long format with a subgroup
// column, by forwarding to the external reshape function. Pure pass-through:
// whatever the external function returns or raises comes back, including its
// known column-naming quirks.
func (c *Client) TidyEnr(ctx context.Context, df dataframe.DataFrame) (dataframe.DataFrame, error) {
	t, err := fromDataFrame(df)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	tidied, err := c.source.Tidy(ctx, t)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	return toDataFrame(tidied)
}

// AvailableYears returns the supported year range from the external
// package's year-bounds accessor.
func (c *Client) AvailableYears(ctx context.Context) (YearRange, error) {
	return c.source.YearBounds(ctx)
}

func (c *Client) enrollmentFrame(t Table) (dataframe.DataFrame, error) {
	df, err := toDataFrame(t)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	for _, name := range requiredEnrollmentColumns {
		if _, ok := t.Col(name); !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return df, nil
}
