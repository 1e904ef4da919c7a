// Package config loads runtime configuration into explicit structs that
// are passed into component constructors. Nothing outside this package
// reads environment state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries provider credentials and ambient settings.
type Config struct {
	Provider string // "gemini", "openai", or "fake"
	Model    string

	GeminiAPIKey string
	OpenAIAPIKey string
	TavilyAPIKey string

	MarketURL    string
	MarketAPIKey string

	LogLevel  string
	LogFormat string

	UsageLedger string
	LLMRPS      float64
	LLMBurst    int
	SearchCache int
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Provider:     firstNonEmpty(os.Getenv("LLM_PROVIDER"), "gemini"),
		Model:        firstNonEmpty(os.Getenv("LLM_MODEL"), "gemini-2.5-flash"),
		GeminiAPIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		OpenAIAPIKey: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		TavilyAPIKey: strings.TrimSpace(os.Getenv("TAVILY_API_KEY")),
		MarketURL:    strings.TrimSpace(os.Getenv("MARKET_API_URL")),
		MarketAPIKey: strings.TrimSpace(os.Getenv("MARKET_API_KEY")),
		LogLevel:     firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		LogFormat:    firstNonEmpty(os.Getenv("LOG_FORMAT"), "text"),
		UsageLedger:  strings.TrimSpace(os.Getenv("LLM_USAGE_LEDGER")),
		LLMRPS:       envFloat("LLM_RPS", 0),
		LLMBurst:     envInt("LLM_BURST", 1),
		SearchCache:  envInt("SEARCH_CACHE_SIZE", 128),
	}
	return cfg, nil
}

// APIKeyFor returns the inference key for the configured provider.
func (c *Config) APIKeyFor(provider string) (string, error) {
	switch provider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return "", fmt.Errorf("config: GEMINI_API_KEY is not set")
		}
		return c.GeminiAPIKey, nil
	case "openai":
		if c.OpenAIAPIKey == "" {
			return "", fmt.Errorf("config: OPENAI_API_KEY is not set")
		}
		return c.OpenAIAPIKey, nil
	case "fake":
		return "", nil
	default:
		return "", fmt.Errorf("config: unknown provider %q", provider)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
