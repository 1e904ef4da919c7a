package thinking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"foresight/internal/llm"
	llmclient "foresight/internal/llm/client"
)

// ErrNoEstimates is returned when aggregation is attempted with no
// surviving scenario estimates.
var ErrNoEstimates = errors.New("thinking: no scenario estimates to aggregate")

// Aggregator folds all per-scenario estimates into one final Answer for
// the original question.
type Aggregator struct {
	LLM llmclient.LLMClient
	Log *slog.Logger
}

type scenarioEstimate struct {
	Scenario   string  `json:"scenario"`
	PYes       float64 `json:"p_yes"`
	PNo        float64 `json:"p_no"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type aggregateInput struct {
	Question  string             `json:"question"`
	Estimates []scenarioEstimate `json:"estimates"`
}

// Aggregate issues one final model task over the serialized estimates.
// Unlike the per-scenario predictor, a malformed response here is a hard
// error: by this stage the upstream context is rich enough that failure is
// rare, and the caller may retry the whole aggregation if it wants to.
func (a *Aggregator) Aggregate(ctx context.Context, question string, order []string, answers map[string]Answer) (Answer, error) {
	if len(answers) == 0 {
		return Answer{}, ErrNoEstimates
	}
	ctx = llm.WithWorker(ctx, "aggregator")

	input := aggregateInput{Question: question}
	for _, scenario := range order {
		ans, ok := answers[scenario]
		if !ok {
			continue
		}
		input.Estimates = append(input.Estimates, scenarioEstimate{
			Scenario:   scenario,
			PYes:       ans.PYes,
			PNo:        ans.PNo,
			Confidence: ans.Confidence,
			Reasoning:  ans.Reasoning,
		})
	}

	raw, err := a.LLM.GenerateJSON(ctx, finalDecisionPrompt, input)
	if err != nil {
		return Answer{}, fmt.Errorf("thinking: final decision: %w", err)
	}
	res := ParseAnswer(raw)
	if !res.Parsed {
		return Answer{}, fmt.Errorf("thinking: final decision does not match answer schema (raw %q): %w", string(res.Raw), res.Err)
	}
	if a.Log != nil {
		a.Log.Info("final decision",
			"question", question,
			"decision", res.Answer.Decision,
			"p_yes", res.Answer.PYes,
			"p_no", res.Answer.PNo,
			"confidence", res.Answer.Confidence)
	}
	return res.Answer, nil
}
