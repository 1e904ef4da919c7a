package thinking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Pipeline runs the research+predict step across scenarios with bounded
// parallelism and iterates for a fixed number of refinement rounds.
type Pipeline struct {
	Researcher *Researcher
	Predictor  *Predictor
	Workers    int
	Log        *slog.Logger
}

// Refine executes exactly rounds iterations; there is no convergence
// early-exit, which keeps cost bounded. Each round fans research+predict
// out across every scenario, waits for all of them (a join barrier), and
// replaces the previous round's state with the new estimates. Scenarios
// that fail a round are dropped from that round's state but are retried
// fresh in the next round with the updated prior-round context.
//
// The returned map holds the last round's estimates keyed by scenario. It
// is empty when every scenario failed in the final round.
func (p *Pipeline) Refine(ctx context.Context, question string, scenarios []string, rounds int) map[string]Answer {
	if rounds < 1 {
		rounds = 1
	}
	workers := p.Workers
	if workers <= 0 {
		workers = 4
	}
	log := p.Log
	if log == nil {
		log = slog.Default()
	}

	type outcome struct {
		answer Answer
		ok     bool
	}

	var state map[string]Answer
	prior := ""
	for round := 1; round <= rounds; round++ {
		results := make([]outcome, len(scenarios))

		g := new(errgroup.Group)
		g.SetLimit(workers)
		for i, scenario := range scenarios {
			g.Go(func() error {
				a, ok := p.runOne(ctx, scenario, prior)
				results[i] = outcome{answer: a, ok: ok}
				return nil
			})
		}
		// Individual failures never cancel siblings; the only error source
		// would be a panic, and tasks report through results instead.
		_ = g.Wait()

		state = make(map[string]Answer, len(scenarios))
		for i, scenario := range scenarios {
			if results[i].ok {
				state[scenario] = results[i].answer
			}
		}
		log.Info("refinement round complete",
			"question", question,
			"round", round,
			"rounds", rounds,
			"scenarios", len(scenarios),
			"survived", len(state))

		prior = serializeRoundState(scenarios, state)
	}
	return state
}

func (p *Pipeline) runOne(ctx context.Context, scenario, prior string) (Answer, bool) {
	research, err := p.Researcher.Research(ctx, scenario, prior)
	if err != nil {
		// Provider-level failure during research drops the scenario for
		// this round, same as a predictor-side failure.
		log := p.Log
		if log == nil {
			log = slog.Default()
		}
		log.Warn("dropping scenario: research failed", "scenario", scenario, "err", err)
		return Answer{}, false
	}
	return p.Predictor.Predict(ctx, scenario, research.Report, research.ToolErr, prior)
}

// serializeRoundState renders the round's estimates in scenario order for
// inclusion in the next round's prompts.
func serializeRoundState(order []string, state map[string]Answer) string {
	if len(state) == 0 {
		return ""
	}
	var b strings.Builder
	for _, scenario := range order {
		a, ok := state[scenario]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- scenario: %s\n  probability_yes: %.3f\n  confidence: %.3f\n  reasoning: %s\n",
			scenario, a.PYes, a.Confidence, a.Reasoning)
	}
	return b.String()
}
