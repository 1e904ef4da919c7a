package thinking

import (
	"context"
	"encoding/json"
	"sync"

	"foresight/internal/llm"
	"foresight/internal/llmtool"
)

// stubLLM routes GenerateJSON through a test-provided function and counts
// calls per worker and scenario.
type stubLLM struct {
	mu      sync.Mutex
	calls   map[string]int // worker -> count
	perScen map[string]int // worker + "|" + scenario -> count

	genJSON func(worker string, in stubInput) (json.RawMessage, error)
}

// stubInput is the superset of the pipeline's per-call inputs.
type stubInput struct {
	Scenario    string             `json:"scenario"`
	Question    string             `json:"question"`
	NScenarios  int                `json:"n_scenarios"`
	Research    string             `json:"research"`
	PriorRounds string             `json:"prior_round_estimates"`
	Estimates   []scenarioEstimate `json:"estimates"`
}

func newStubLLM(gen func(worker string, in stubInput) (json.RawMessage, error)) *stubLLM {
	return &stubLLM{
		calls:   map[string]int{},
		perScen: map[string]int{},
		genJSON: gen,
	}
}

func (s *stubLLM) Name() string                { return "stub" }
func (s *stubLLM) Close() error                { return nil }
func (s *stubLLM) CountTokens(text string) int { return len(text) / 4 }
func (s *stubLLM) TokenCapacity() int          { return 4096 }

func (s *stubLLM) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	worker := llm.WorkerFrom(ctx)
	b, _ := json.Marshal(input)
	var in stubInput
	_ = json.Unmarshal(b, &in)

	s.mu.Lock()
	s.calls[worker]++
	if in.Scenario != "" {
		s.perScen[worker+"|"+in.Scenario]++
	}
	s.mu.Unlock()

	return s.genJSON(worker, in)
}

func (s *stubLLM) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	return "", nil
}

func (s *stubLLM) workerCalls(worker string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[worker]
}

func (s *stubLLM) scenarioCalls(worker, scenario string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.perScen[worker+"|"+scenario]
}

// noTools is a tool provider with no tools; research stubs answer final
// directly.
type noTools struct{}

func (noTools) Specs() []llmtool.ToolSpec { return nil }
func (noTools) Call(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, error) {
	return nil, nil
}

// mustJSON marshals v for stub responses.
func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// finalReport wraps a research report in the tool-loop final envelope.
func finalReport(report string) json.RawMessage {
	return mustJSON(map[string]any{
		"action": "final",
		"final":  map[string]string{"report": report},
	})
}

// goodAnswer is a schema-valid answer payload.
func goodAnswer(pYes float64) json.RawMessage {
	decision := "y"
	if pYes < 0.5 {
		decision = "n"
	}
	return mustJSON(map[string]any{
		"reasoning":  "stub reasoning",
		"decision":   decision,
		"p_yes":      pYes,
		"p_no":       1 - pYes,
		"confidence": 0.8,
	})
}
