package llm

import (
	"context"
	"fmt"

	llmclient "foresight/internal/llm/client"
)

// ProviderConfig selects and configures an inference provider. Keys are
// passed explicitly; clients never read ambient environment state.
type ProviderConfig struct {
	Provider string // "gemini", "openai", or "fake"
	Model    string
	APIKey   string
	TokenCap int
}

// NewClient builds the raw provider client for the given config.
// Cross-cutting middleware is applied by the caller via Wrap.
func NewClient(ctx context.Context, cfg ProviderConfig) (llmclient.LLMClient, error) {
	switch cfg.Provider {
	case "gemini":
		return llmclient.NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.TokenCap)
	case "openai":
		return llmclient.NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.TokenCap)
	case "fake":
		return NewFakeClient(cfg.TokenCap), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
