package fetch

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/gaurav-prasanna/legispipe/core"
)

// Cached wraps a Fetcher with an in-memory LRU of successful responses.
// Joint committee pages and contact pages are often linked more than
// once per run.
type Cached struct {
	next  core.Fetcher
	cache *lru.Cache[string, *core.FetchResult]
}

// NewCached creates a Cached fetcher holding up to size responses.
func NewCached(next core.Fetcher, size int) (*Cached, error) {
	cache, err := lru.New[string, *core.FetchResult](size)
	if err != nil {
		return nil, fmt.Errorf("creating fetch cache: %w", err)
	}
	return &Cached{next: next, cache: cache}, nil
}

// Fetch returns the cached response for url, fetching it on a miss.
// Errors are not cached.
func (c *Cached) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	if res, ok := c.cache.Get(url); ok {
		return res, nil
	}
	res, err := c.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	c.cache.Add(url, res)
	return res, nil
}

// Len returns the number of cached responses.
func (c *Cached) Len() int {
	return c.cache.Len()
}
