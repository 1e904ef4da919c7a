package llm

import (
	"context"
	"encoding/json"
	"log/slog"

	llmclient "foresight/internal/llm/client"
)

// WithLogging logs request sizes and errors. A nil logger uses slog.Default().
func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &logging{next: next, log: logger}
	}
}

type logging struct {
	next llmclient.LLMClient
	log  *slog.Logger
}

func (l *logging) Name() string                { return l.next.Name() }
func (l *logging) Close() error                { return l.next.Close() }
func (l *logging) CountTokens(text string) int { return l.next.CountTokens(text) }
func (l *logging) TokenCapacity() int          { return l.next.TokenCapacity() }

func (l *logging) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	in, _ := json.Marshal(input)
	l.log.Debug("llm request", "worker", WorkerFrom(ctx), "model", l.next.Name(), "bytes", len(prompt)+len(in))
	raw, err := l.next.GenerateJSON(ctx, prompt, input)
	if err != nil {
		l.log.Warn("llm error", "worker", WorkerFrom(ctx), "model", l.next.Name(), "err", err)
	}
	return raw, err
}

func (l *logging) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	in, _ := json.Marshal(input)
	l.log.Debug("llm text request", "worker", WorkerFrom(ctx), "model", l.next.Name(), "bytes", len(prompt)+len(in))
	out, err := l.next.GenerateText(ctx, prompt, input)
	if err != nil {
		l.log.Warn("llm text error", "worker", WorkerFrom(ctx), "model", l.next.Name(), "err", err)
	}
	return out, err
}
