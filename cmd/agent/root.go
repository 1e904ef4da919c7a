package main

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"foresight/internal/config"
	"foresight/internal/llm"
	llmclient "foresight/internal/llm/client"
	"foresight/internal/logging"
	"foresight/internal/search"
)

var rootFlags struct {
	provider string
	model    string
}

var rootCmd = &cobra.Command{
	Use:           "agent",
	Short:         "Prediction-market agents",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.provider, "provider", "", "inference provider override (gemini|openai|fake)")
	pf.StringVar(&rootFlags.model, "model", "", "model override")

	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(runCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rootFlags.provider != "" {
		cfg.Provider = rootFlags.provider
	}
	if rootFlags.model != "" {
		cfg.Model = rootFlags.model
	}
	logging.Init(parseLevel(cfg.LogLevel), cfg.LogFormat, nil)
	return cfg, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// buildLLM constructs the provider client with the ambient middleware
// chain applied.
func buildLLM(ctx context.Context, cfg *config.Config) (llmclient.LLMClient, error) {
	key, err := cfg.APIKeyFor(cfg.Provider)
	if err != nil {
		return nil, err
	}
	cli, err := llm.NewClient(ctx, llm.ProviderConfig{
		Provider: cfg.Provider,
		Model:    cfg.Model,
		APIKey:   key,
	})
	if err != nil {
		return nil, err
	}
	mws := []llm.Middleware{llm.WithLogging(logging.New("llm"))}
	if cfg.LLMRPS > 0 {
		mws = append(mws, llm.RateLimit(cfg.LLMRPS, cfg.LLMBurst))
	}
	if cfg.UsageLedger != "" {
		mws = append(mws, llm.WithUsageLedger(cfg.UsageLedger))
	}
	return llm.Wrap(cli, mws...), nil
}

// buildSearchTools wires the search provider with cache and retry. The
// fake provider gets a canned search client so offline runs stay offline.
func buildSearchTools(cfg *config.Config) (*search.ToolProvider, error) {
	var cli search.Client
	if cfg.Provider == "fake" {
		cli = staticSearch{}
	} else {
		cached, err := search.NewCachedClient(search.NewTavilyClient(cfg.TavilyAPIKey), cfg.SearchCache)
		if err != nil {
			return nil, err
		}
		cli = cached
	}
	return &search.ToolProvider{Client: cli, Retry: search.DefaultRetry()}, nil
}

type staticSearch struct{}

func (staticSearch) Search(ctx context.Context, query string) ([]search.Result, error) {
	return []search.Result{{Title: "offline", URL: "about:blank", Content: "no live search in fake mode"}}, nil
}
