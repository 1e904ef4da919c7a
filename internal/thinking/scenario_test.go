package thinking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const question = "Will it rain in Paris tomorrow?"

func TestGenerateHypotheticalAddsOriginalQuestion(t *testing.T) {
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		return mustJSON(Scenarios{Scenarios: []string{
			"It rains in Paris tomorrow",
			"It does not rain in Paris tomorrow",
		}}), nil
	})
	gen := &ScenarioGenerator{LLM: cli}

	out, err := gen.Generate(context.Background(), question, Hypothetical, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"It rains in Paris tomorrow",
		"It does not rain in Paris tomorrow",
		question,
	}, out.Scenarios)
}

func TestGenerateHypotheticalKeepsQuestionOnce(t *testing.T) {
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		return mustJSON(Scenarios{Scenarios: []string{question, "Other outcome", question}}), nil
	})
	gen := &ScenarioGenerator{LLM: cli}

	out, err := gen.Generate(context.Background(), question, Hypothetical, 5)
	require.NoError(t, err)

	count := 0
	for _, s := range out.Scenarios {
		if s == question {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGenerateConditionalDoesNotAddQuestion(t *testing.T) {
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		return mustJSON(Scenarios{Scenarios: []string{"A storm system reaches Western Europe"}}), nil
	})
	gen := &ScenarioGenerator{LLM: cli}

	out, err := gen.Generate(context.Background(), question, Conditional, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A storm system reaches Western Europe"}, out.Scenarios)
}

func TestGenerateIsIdempotentWithDeterministicModel(t *testing.T) {
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		return mustJSON(Scenarios{Scenarios: []string{"A", "B", "A"}}), nil
	})
	gen := &ScenarioGenerator{LLM: cli}

	first, err := gen.Generate(context.Background(), question, Hypothetical, 5)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), question, Hypothetical, 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateSchemaFailureIsHardError(t *testing.T) {
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		return json.RawMessage(`{"scenarios": "not a list"}`), nil
	})
	gen := &ScenarioGenerator{LLM: cli}

	_, err := gen.Generate(context.Background(), question, Hypothetical, 5)
	assert.Error(t, err)
}

func TestGenerateProviderErrorPropagates(t *testing.T) {
	boom := errors.New("rate limited")
	cli := newStubLLM(func(worker string, in stubInput) (json.RawMessage, error) {
		return nil, boom
	})
	gen := &ScenarioGenerator{LLM: cli}

	_, err := gen.Generate(context.Background(), question, Conditional, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}
