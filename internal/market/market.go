// Package market defines the prediction-market surface the deploy harness
// consumes. The core pipeline never talks to it; its only touch point is
// the final answer returned per question.
package market

import "context"

// Outcome of a binary bet.
type Outcome string

const (
	OutcomeYes Outcome = "yes"
	OutcomeNo  Outcome = "no"
)

// AgentMarket is one open binary question on a market venue.
type AgentMarket struct {
	ID       string  `json:"id"`
	Question string  `json:"question"`
	PYes     float64 `json:"p_yes"`
	Volume   float64 `json:"volume"`
	Closed   bool    `json:"closed"`
}

// Provider lists open markets and accepts bets.
type Provider interface {
	ListMarkets(ctx context.Context) ([]AgentMarket, error)
	PlaceBet(ctx context.Context, marketID string, outcome Outcome, amount float64) error
}
