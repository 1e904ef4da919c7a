package deploy

import (
	"context"
	"math/rand/v2"

	"foresight/internal/thinking"
)

// CoinFlipAgent answers every market with a random 50/50 call. It exists
// as a harness smoke agent: deployments can be exercised end to end
// without spending inference or search quota.
type CoinFlipAgent struct{}

func (CoinFlipAgent) AnswerBinaryMarket(ctx context.Context, question string) (*thinking.Answer, error) {
	decision := thinking.DecisionNo
	if rand.IntN(2) == 0 {
		decision = thinking.DecisionYes
	}
	return &thinking.Answer{
		Reasoning:  "coin flip",
		Decision:   decision,
		PYes:       0.5,
		PNo:        0.5,
		Confidence: 0.5,
	}, nil
}
