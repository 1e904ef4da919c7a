package thinking

import (
	"context"
	"log/slog"

	"foresight/internal/llm"
	llmclient "foresight/internal/llm/client"
)

// Predictor converts research output for a scenario into a structured
// Answer. Failures at this layer are expected (search flakiness, model
// formatting drift); they are logged and reported as ok=false so the
// pipeline can drop the scenario without aborting the run.
type Predictor struct {
	LLM llmclient.LLMClient
	Log *slog.Logger
}

type predictInput struct {
	Scenario    string `json:"scenario"`
	Research    string `json:"research"`
	PriorRounds string `json:"prior_round_estimates,omitempty"`
}

// Predict returns (answer, true) on success. It returns ok=false when the
// research recorded a tool failure, when the provider call errors, or when
// the output fails Answer schema validation. None of those are errors to
// the caller.
func (p *Predictor) Predict(ctx context.Context, scenario, evidence string, toolErr bool, priorCtx string) (Answer, bool) {
	log := p.Log
	if log == nil {
		log = slog.Default()
	}
	if toolErr {
		log.Warn("dropping scenario: research tools failed", "scenario", scenario)
		return Answer{}, false
	}

	ctx = llm.WithWorker(ctx, "predictor")
	input := predictInput{Scenario: scenario, Research: evidence, PriorRounds: priorCtx}
	raw, err := p.LLM.GenerateJSON(ctx, predictOutcomePrompt, input)
	if err != nil {
		log.Warn("dropping scenario: provider error", "scenario", scenario, "err", err)
		return Answer{}, false
	}

	res := ParseAnswer(raw)
	if !res.Parsed {
		log.Warn("dropping scenario: malformed answer", "scenario", scenario, "raw", string(res.Raw), "err", res.Err)
		return Answer{}, false
	}
	return res.Answer, true
}
