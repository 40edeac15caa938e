package schooldata

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// YearRangeCache memoizes the first successful YearBounds lookup for its own
// lifetime and collapses concurrent lookups into one external call. It is
// opt-in: Client never caches, so the scope of the memo is exactly the scope
// of whoever holds the cache (typically a test harness). Errors are not
// cached. Safe for concurrent use.
type YearRangeCache struct {
	mu  sync.RWMutex
	sf  singleflight.Group
	set bool
	yr  YearRange
}

// Get returns the memoized year range, fetching it from src on first use.
func (c *YearRangeCache) Get(ctx context.Context, src Source) (YearRange, error) {
	c.mu.RLock()
	if c.set {
		yr := c.yr
		c.mu.RUnlock()
		return yr, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.sf.Do("years", func() (any, error) {
		c.mu.RLock()
		if c.set {
			yr := c.yr
			c.mu.RUnlock()
			return yr, nil
		}
		c.mu.RUnlock()

		yr, err := src.YearBounds(ctx)
		if err != nil {
			return YearRange{}, err
		}
		c.mu.Lock()
		c.yr = yr
		c.set = true
		c.mu.Unlock()
		return yr, nil
	})
	if err != nil {
		return YearRange{}, err
	}
	return v.(YearRange), nil
}

// Reset clears the memo so the next Get hits the Source again.
func (c *YearRangeCache) Reset() {
	c.mu.Lock()
	c.set = false
	c.yr = YearRange{}
	c.mu.Unlock()
}
