package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	llmclient "foresight/internal/llm/client"
)

// Retry retries LLM calls up to maxAttempts with exponential backoff
// starting at baseDelay. If context is canceled, it stops immediately.
func Retry(maxAttempts int, baseDelay time.Duration) Middleware {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = 300 * time.Millisecond
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &retrying{next: next, max: maxAttempts, base: baseDelay}
	}
}

type retrying struct {
	next llmclient.LLMClient
	max  int
	base time.Duration
}

func (r *retrying) Name() string                { return r.next.Name() }
func (r *retrying) Close() error                { return r.next.Close() }
func (r *retrying) CountTokens(text string) int { return r.next.CountTokens(text) }
func (r *retrying) TokenCapacity() int          { return r.next.TokenCapacity() }

func (r *retrying) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	var out json.RawMessage
	err := r.do(ctx, func() error {
		var err error
		out, err = r.next.GenerateJSON(ctx, prompt, input)
		return err
	})
	return out, err
}

func (r *retrying) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	var out string
	err := r.do(ctx, func() error {
		var err error
		out, err = r.next.GenerateText(ctx, prompt, input)
		return err
	})
	return out, err
}

func (r *retrying) do(ctx context.Context, call func() error) error {
	var last error
	for i := 0; i < r.max; i++ {
		err := call()
		if err == nil {
			return nil
		}
		// Permanent errors do not resolve with retries.
		var pErr *llmclient.PermanentError
		if errors.As(err, &pErr) {
			return err
		}
		last = err
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		time.Sleep(r.base * time.Duration(1<<i))
	}
	return last
}
