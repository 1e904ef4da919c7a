package llmclient

import (
	"context"
	"encoding/json"
)

// LLMClient defines the interface for LLM providers.
type LLMClient interface {
	Name() string
	Close() error
	CountTokens(text string) int
	TokenCapacity() int
	// GenerateJSON asks the model for output matching the JSON shape the
	// prompt declares and returns the raw JSON. Validating against a
	// concrete schema type is the caller's job.
	GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
	// GenerateText returns a free-form completion with no format constraint.
	GenerateText(ctx context.Context, prompt string, input any) (string, error)
}
