package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "LOG_LEVEL", "LOG_FORMAT",
		"LLM_RPS", "LLM_BURST", "SEARCH_CACHE_SIZE",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 128, cfg.SearchCache)
	assert.Zero(t, cfg.LLMRPS)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("LLM_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_API_KEY", " sk-test ")
	t.Setenv("LLM_RPS", "2.5")
	t.Setenv("SEARCH_CACHE_SIZE", "64")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, 2.5, cfg.LLMRPS)
	assert.Equal(t, 64, cfg.SearchCache)
}

func TestAPIKeyFor(t *testing.T) {
	cfg := &Config{GeminiAPIKey: "g-key"}

	key, err := cfg.APIKeyFor("gemini")
	require.NoError(t, err)
	assert.Equal(t, "g-key", key)

	_, err = cfg.APIKeyFor("openai")
	assert.Error(t, err)

	key, err = cfg.APIKeyFor("fake")
	require.NoError(t, err)
	assert.Empty(t, key)

	_, err = cfg.APIKeyFor("bedrock")
	assert.Error(t, err)
}
