package search

import (
	"context"
	"time"

	llmclient "foresight/internal/llm/client"
)

// RetryPolicy retries a call with a fixed delay between attempts. It is
// applied explicitly at the call site so tests can inject failing-then-
// succeeding providers.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetry matches the provider guidance of three attempts with a
// short fixed pause.
func DefaultRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Delay: time.Second}
}

// Do runs fn until it succeeds, attempts are exhausted, the error is
// permanent, or the context is canceled. The last error is returned.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	var last error
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		last = fn()
		if last == nil {
			return nil
		}
		if llmclient.IsPermanent(last) {
			return last
		}
		if i < attempts-1 && p.Delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Delay):
			}
		}
	}
	return last
}
