package search

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// resultCache memoizes engine results by raw input. Engine results are pure
// functions of the input and the policy, so entries never go stale for the
// lifetime of a Service. A nil *resultCache computes every time.
type resultCache[V any] struct {
	entries *lru.Cache[string, V]
	group   singleflight.Group // dedupe concurrent computation of the same input
}

func newResultCache[V any](size int) (*resultCache[V], error) {
	if size <= 0 {
		return nil, nil
	}
	entries, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &resultCache[V]{entries: entries}, nil
}

// getOrCompute returns the cached value for key, or runs compute once for all
// concurrent callers and stores the result. hit reports a cache hit.
func (c *resultCache[V]) getOrCompute(key string, compute func() V) (value V, hit bool) {
	if c == nil {
		return compute(), false
	}

	if v, ok := c.entries.Get(key); ok {
		return v, true
	}

	result, _, _ := c.group.Do(key, func() (interface{}, error) {
		// Double-check after winning the flight
		if v, ok := c.entries.Get(key); ok {
			return v, nil
		}
		v := compute()
		c.entries.Add(key, v)
		return v, nil
	})
	return result.(V), false
}

// Len returns the number of cached entries.
func (c *resultCache[V]) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

