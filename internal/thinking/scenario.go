package thinking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"foresight/internal/llm"
	llmclient "foresight/internal/llm/client"
)

// ScenarioKind selects how a question is decomposed.
type ScenarioKind string

const (
	// Hypothetical scenarios are alternate realizations of the question.
	Hypothetical ScenarioKind = "hypothetical"
	// Conditional scenarios are preconditions the question requires.
	Conditional ScenarioKind = "conditional"
)

// ScenarioGenerator expands one question into a set of related
// sub-questions via a single structured LLM task.
type ScenarioGenerator struct {
	LLM llmclient.LLMClient
	Log *slog.Logger
}

// Generate returns the scenario set for the question. Count is a hint
// passed to the model, not a hard limit. A response that does not match
// the Scenarios schema is a hard error; retrying is the caller's call.
//
// For the hypothetical kind the original question is always part of the
// result, exactly once, so the question is evaluated as one of its own
// variants.
func (g *ScenarioGenerator) Generate(ctx context.Context, question string, kind ScenarioKind, count int) (Scenarios, error) {
	ctx = llm.WithWorker(ctx, "scenario-generator")

	prompt := hypotheticalScenariosPrompt
	if kind == Conditional {
		prompt = conditionalScenariosPrompt
	}
	input := map[string]any{
		"question":    question,
		"n_scenarios": count,
	}
	raw, err := g.LLM.GenerateJSON(ctx, prompt, input)
	if err != nil {
		return Scenarios{}, fmt.Errorf("thinking: generate %s scenarios: %w", kind, err)
	}
	var out Scenarios
	if err := json.Unmarshal(raw, &out); err != nil {
		return Scenarios{}, fmt.Errorf("thinking: %s scenarios do not match schema: %w", kind, err)
	}

	out.Scenarios = dedupe(out.Scenarios)
	if kind == Hypothetical && !contains(out.Scenarios, question) {
		out.Scenarios = append(out.Scenarios, question)
	}
	if g.Log != nil {
		g.Log.Info("generated scenarios", "kind", string(kind), "count", len(out.Scenarios))
	}
	return out, nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
