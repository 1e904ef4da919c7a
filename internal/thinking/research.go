package thinking

import (
	"context"
	"encoding/json"
	"log/slog"

	"foresight/internal/llm"
	llmclient "foresight/internal/llm/client"
	"foresight/internal/llmtool"
)

// Research is the evidence gathered for one scenario. ToolErr marks that a
// search call failed even after retries; the predictor treats a tainted
// report as unusable.
type Research struct {
	Report  string
	ToolErr bool
}

// Researcher gathers free-form evidence for a scenario by running the LLM
// tool loop with the web-search tool available. The model decides how many
// searches to issue, including none.
type Researcher struct {
	LLM      llmclient.LLMClient
	Tools    llmtool.ToolProvider
	MaxIters int
	Log      *slog.Logger
}

type researchInput struct {
	Scenario    string `json:"scenario"`
	PriorRounds string `json:"prior_round_estimates,omitempty"`
}

type researchReport struct {
	Report string `json:"report"`
}

// Research runs the tool loop for one scenario. priorCtx carries the
// serialized previous-round estimates and is empty on the first round.
// Output is free-form text; there is no schema validation at this stage.
func (r *Researcher) Research(ctx context.Context, scenario, priorCtx string) (Research, error) {
	ctx = llm.WithWorker(ctx, "researcher")

	loop := &llmtool.ToolLoop{
		LLM:      r.LLM,
		Tools:    r.Tools,
		MaxIters: r.MaxIters,
	}
	input := researchInput{Scenario: scenario, PriorRounds: priorCtx}
	final, state, err := loop.Run(ctx, input, llmtool.DefaultPromptBuilder(researchOutcomePrompt))
	if err != nil {
		return Research{}, err
	}

	out := Research{ToolErr: state.HadToolError()}
	var rep researchReport
	if jsonErr := json.Unmarshal(final, &rep); jsonErr == nil && rep.Report != "" {
		out.Report = rep.Report
	} else {
		// Free-form stage: accept whatever the model produced.
		out.Report = string(final)
	}
	if out.ToolErr && r.Log != nil {
		r.Log.Warn("research had tool failures", "scenario", scenario, "iterations", state.Iterations)
	}
	return out, nil
}
