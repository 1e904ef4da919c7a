// Package deploy is the harness that connects an agent to a market
// venue: it lists open markets, asks the agent for answers under a run
// deadline, and optionally places bets.
package deploy

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"foresight/internal/logging"
	"foresight/internal/market"
	"foresight/internal/thinking"
)

// Agent answers one binary market question. A (nil, nil) return means the
// agent could not decide; the harness skips the market without failing
// the run.
type Agent interface {
	AnswerBinaryMarket(ctx context.Context, question string) (*thinking.Answer, error)
}

// Runner drives one deployment run.
type Runner struct {
	Agent    Agent
	Provider market.Provider

	// MarketsPerRun caps how many markets one run answers.
	MarketsPerRun int
	// Timeout bounds wall-clock time per market; the pipeline itself has
	// no internal deadline, so the harness must own one.
	Timeout time.Duration
	// PlaceBets enables bet placement; dry runs only log decisions.
	PlaceBets bool
	// BetAmount is the fixed stake per bet when PlaceBets is set.
	BetAmount float64

	Log *slog.Logger
}

// Run executes one deployment pass. Per-market failures and undecided
// answers are logged and skipped; only venue-level failures abort the run.
func (r *Runner) Run(ctx context.Context) error {
	log := r.Log
	if log == nil {
		log = logging.New("deploy")
	}
	runID := uuid.NewString()
	log = log.With("run_id", runID)

	markets, err := r.Provider.ListMarkets(ctx)
	if err != nil {
		return err
	}
	log.Info("run started", "open_markets", len(markets))

	max := r.MarketsPerRun
	if max <= 0 {
		max = 1
	}
	answered := 0
	for _, m := range markets {
		if answered >= max {
			break
		}
		if m.Closed {
			continue
		}
		r.runMarket(ctx, log, m)
		answered++
	}
	log.Info("run finished", "answered", answered)
	return nil
}

func (r *Runner) runMarket(ctx context.Context, log *slog.Logger, m market.AgentMarket) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}
	mctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	answer, err := r.Agent.AnswerBinaryMarket(mctx, m.Question)
	if err != nil {
		log.Error("market failed", "market", m.ID, "question", m.Question, "err", err)
		return
	}
	if answer == nil {
		log.Warn("market undecided", "market", m.ID, "question", m.Question)
		return
	}

	log.Info("market answered",
		"market", m.ID,
		"question", m.Question,
		"decision", answer.Decision,
		"p_yes", answer.PYes,
		"confidence", answer.Confidence,
		"market_p_yes", m.PYes)

	if !r.PlaceBets || answer.Decision == thinking.DecisionUndetermined {
		return
	}
	outcome := market.OutcomeYes
	if answer.Decision == thinking.DecisionNo {
		outcome = market.OutcomeNo
	}
	if err := r.Provider.PlaceBet(ctx, m.ID, outcome, r.BetAmount); err != nil {
		log.Error("bet failed", "market", m.ID, "outcome", outcome, "err", err)
		return
	}
	log.Info("bet placed", "market", m.ID, "outcome", outcome, "amount", r.BetAmount)
}
