package search

import (
	"context"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedClient memoizes successful search responses per normalized query.
// Scenarios across rounds frequently re-issue the same queries; the cache
// keeps those from spending additional provider calls. Errors are never
// cached.
type CachedClient struct {
	inner Client
	lru   *lru.Cache[string, []Result]
}

func NewCachedClient(inner Client, size int) (*CachedClient, error) {
	if size <= 0 {
		size = 128
	}
	c, err := lru.New[string, []Result](size)
	if err != nil {
		return nil, err
	}
	return &CachedClient{inner: inner, lru: c}, nil
}

func (c *CachedClient) Search(ctx context.Context, query string) ([]Result, error) {
	key := strings.ToLower(strings.TrimSpace(query))
	if hit, ok := c.lru.Get(key); ok {
		return hit, nil
	}
	results, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, results)
	return results, nil
}
