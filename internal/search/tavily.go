package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	llmclient "foresight/internal/llm/client"
)

// TavilyClient calls the Tavily search API.
// See: https://docs.tavily.com/docs/rest-api
type TavilyClient struct {
	http       *http.Client
	apiKey     string
	baseURL    string
	maxResults int
}

// TavilyOption tweaks the client.
type TavilyOption func(*TavilyClient)

// WithBaseURL overrides the endpoint, mainly for tests.
func WithBaseURL(u string) TavilyOption {
	return func(c *TavilyClient) { c.baseURL = u }
}

// WithMaxResults caps the number of results per query.
func WithMaxResults(n int) TavilyOption {
	return func(c *TavilyClient) { c.maxResults = n }
}

func NewTavilyClient(apiKey string, opts ...TavilyOption) *TavilyClient {
	c := &TavilyClient{
		http:       &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    "https://api.tavily.com/search",
		maxResults: 5,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tavilySearchReq struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

type tavilySearchResp struct {
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

func (c *TavilyClient) Search(ctx context.Context, query string) ([]Result, error) {
	b, _ := json.Marshal(tavilySearchReq{
		APIKey:     c.apiKey,
		Query:      query,
		MaxResults: c.maxResults,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		const max = 2048
		if len(body) > max {
			body = body[:max]
		}
		err := fmt.Errorf("tavily: unexpected status %s: %s", resp.Status, string(body))
		// Auth failures will not resolve with retries.
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, llmclient.NewPermanentError(err)
		}
		return nil, err
	}

	var out tavilySearchResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("tavily: decode response: %w", err)
	}
	results := make([]Result, 0, len(out.Results))
	for _, r := range out.Results {
		results = append(results, Result{Title: r.Title, URL: r.URL, Content: r.Content, Score: r.Score})
	}
	return results, nil
}
