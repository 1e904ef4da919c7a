package thinking

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(cli *stubLLM, workers int) *Pipeline {
	return &Pipeline{
		Researcher: &Researcher{LLM: cli, Tools: noTools{}, MaxIters: 3},
		Predictor:  &Predictor{LLM: cli},
		Workers:    workers,
	}
}

// happyStub answers every research call with a report and every predict
// call with a valid answer.
func happyStub() *stubLLM {
	return newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		if worker == "researcher" {
			return finalReport("report for " + in.Scenario), nil
		}
		return goodAnswer(0.7), nil
	})
}

func TestRefineRunsExactlyNRoundsPerScenario(t *testing.T) {
	cli := happyStub()
	p := newTestPipeline(cli, 2)
	scenarios := []string{"s1", "s2", "s3"}

	state := p.Refine(context.Background(), question, scenarios, 3)
	require.Len(t, state, 3)
	for _, s := range scenarios {
		assert.Equal(t, 3, cli.scenarioCalls("researcher", s), "researcher calls for %s", s)
		assert.Equal(t, 3, cli.scenarioCalls("predictor", s), "predictor calls for %s", s)
	}
}

func TestRefineDroppedScenarioRetriedNextRound(t *testing.T) {
	// s2 fails validation in round 1 (no prior context yet) and succeeds
	// in round 2 once prior context is present.
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		if worker == "researcher" {
			return finalReport("report"), nil
		}
		if in.Scenario == "s2" && in.PriorRounds == "" {
			return json.RawMessage(`{"oops": true}`), nil
		}
		return goodAnswer(0.6), nil
	})
	p := newTestPipeline(cli, 4)

	state := p.Refine(context.Background(), question, []string{"s1", "s2"}, 2)
	require.Len(t, state, 2)
	assert.Equal(t, 2, cli.scenarioCalls("predictor", "s2"))
}

func TestRefinePriorContextCarriesSurvivorsOnly(t *testing.T) {
	var sawPrior string
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		if worker == "researcher" {
			if in.PriorRounds != "" {
				sawPrior = in.PriorRounds
			}
			return finalReport("report"), nil
		}
		if in.Scenario == "dropped" {
			return json.RawMessage(`not json`), nil
		}
		return goodAnswer(0.8), nil
	})
	p := newTestPipeline(cli, 1)

	state := p.Refine(context.Background(), question, []string{"kept", "dropped"}, 2)
	require.Len(t, state, 1)
	require.NotEmpty(t, sawPrior)
	assert.True(t, strings.Contains(sawPrior, "kept"))
	assert.False(t, strings.Contains(sawPrior, "dropped"))
}

func TestRefineAllFailuresYieldEmptyState(t *testing.T) {
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		if worker == "researcher" {
			return finalReport("report"), nil
		}
		return json.RawMessage(`malformed`), nil
	})
	p := newTestPipeline(cli, 2)

	state := p.Refine(context.Background(), question, []string{"s1", "s2"}, 2)
	assert.Empty(t, state)
}

func TestSerializeRoundStateFollowsScenarioOrder(t *testing.T) {
	state := map[string]Answer{
		"b": {Reasoning: "rb", PYes: 0.2, Confidence: 0.4},
		"a": {Reasoning: "ra", PYes: 0.9, Confidence: 0.6},
	}
	out := serializeRoundState([]string{"a", "b", "missing"}, state)
	ia := strings.Index(out, "scenario: a")
	ib := strings.Index(out, "scenario: b")
	require.GreaterOrEqual(t, ia, 0)
	require.Greater(t, ib, ia)
	assert.NotContains(t, out, "missing")
}
