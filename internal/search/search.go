// Package search provides the web-search provider used by the research
// step, with call-site retry for transient failures and an optional
// LRU response cache.
package search

import "context"

// Result is one ranked search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score,omitempty"`
}

// Client is the minimal search-provider surface. Implementations may fail
// transiently (network, HTTP 5xx); callers are responsible for retrying.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
}
