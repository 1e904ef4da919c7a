package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider talks to a market venue over its REST API.
type HTTPProvider struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

func (p *HTTPProvider) ListMarkets(ctx context.Context) ([]AgentMarket, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/markets?state=open", nil)
	if err != nil {
		return nil, err
	}
	p.auth(req)

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusErr("list markets", resp)
	}

	var out []AgentMarket
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("market: decode markets: %w", err)
	}
	return out, nil
}

type betReq struct {
	MarketID string  `json:"market_id"`
	Outcome  Outcome `json:"outcome"`
	Amount   float64 `json:"amount"`
}

func (p *HTTPProvider) PlaceBet(ctx context.Context, marketID string, outcome Outcome, amount float64) error {
	b, _ := json.Marshal(betReq{MarketID: marketID, Outcome: outcome, Amount: amount})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/bets", bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	p.auth(req)

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusErr("place bet", resp)
	}
	return nil
}

func (p *HTTPProvider) auth(req *http.Request) {
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}
}

func statusErr(op string, resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	const max = 2048
	if len(body) > max {
		body = body[:max]
	}
	return fmt.Errorf("market: %s: unexpected status %s: %s", op, resp.Status, string(body))
}
