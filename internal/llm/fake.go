package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// FakeClient returns deterministic, minimal payloads per pipeline step for
// offline runs and testing. The step is read from the worker name in ctx.
type FakeClient struct {
	tokenCap int
}

func NewFakeClient(cap int) *FakeClient {
	if cap <= 0 {
		cap = 4096
	}
	return &FakeClient{tokenCap: cap}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }
func (f *FakeClient) CountTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return len(text) / 4
}
func (f *FakeClient) TokenCapacity() int { return f.tokenCap }

func (f *FakeClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	worker := WorkerFrom(ctx)
	var obj any
	switch {
	case strings.Contains(worker, "scenario"):
		obj = map[string]any{
			"scenarios": []string{
				"The event happens as asked",
				"The event does not happen",
			},
		}
	case strings.Contains(worker, "research"):
		// Researcher asks for a final free-form report in the tool loop.
		obj = map[string]any{
			"action": "final",
			"final":  map[string]any{"report": "fake research report"},
		}
	default:
		// predictor and aggregator share the answer schema
		obj = map[string]any{
			"reasoning":  "fake reasoning",
			"decision":   "y",
			"p_yes":      0.6,
			"p_no":       0.4,
			"confidence": 0.5,
		}
	}
	b, _ := json.Marshal(obj)
	return json.RawMessage(b), nil
}

func (f *FakeClient) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	return "fake completion for " + WorkerFrom(ctx), nil
}
