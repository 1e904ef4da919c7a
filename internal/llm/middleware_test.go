package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	llmclient "foresight/internal/llm/client"
)

type mockClient struct {
	name      string
	calls     int
	failCalls int
	permanent bool
}

func (m *mockClient) Name() string { return m.name }
func (m *mockClient) Close() error { return nil }
func (m *mockClient) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	return len(text) / 2
}
func (m *mockClient) TokenCapacity() int { return 1024 }
func (m *mockClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	m.calls++
	if m.failCalls > 0 {
		m.failCalls--
		if m.permanent {
			return nil, llmclient.NewPermanentError(fmt.Errorf("mock auth failure"))
		}
		return nil, fmt.Errorf("mock failure")
	}
	return json.RawMessage(`{"ok":true}`), nil
}
func (m *mockClient) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	raw, err := m.GenerateJSON(ctx, prompt, input)
	return string(raw), err
}

var _ llmclient.LLMClient = (*mockClient)(nil)

func TestRetry_RecoversFromTransientFailures(t *testing.T) {
	base := &mockClient{name: "mock", failCalls: 2}
	cli := Wrap(base, Retry(3, time.Millisecond))

	out, err := cli.GenerateJSON(context.Background(), "p", nil)
	if err != nil {
		t.Fatalf("GenerateJSON error: %v", err)
	}
	if string(out) != `{"ok":true}` {
		t.Fatalf("unexpected output: %s", string(out))
	}
	if base.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", base.calls)
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	base := &mockClient{name: "mock", failCalls: 10}
	cli := Wrap(base, Retry(2, time.Millisecond))

	if _, err := cli.GenerateJSON(context.Background(), "p", nil); err == nil {
		t.Fatal("expected error after exhausted retries")
	}
	if base.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", base.calls)
	}
}

func TestRetry_DoesNotRetryPermanentErrors(t *testing.T) {
	base := &mockClient{name: "mock", failCalls: 10, permanent: true}
	cli := Wrap(base, Retry(5, time.Millisecond))

	_, err := cli.GenerateJSON(context.Background(), "p", nil)
	var pErr *llmclient.PermanentError
	if !errors.As(err, &pErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if base.calls != 1 {
		t.Fatalf("expected 1 call, got %d", base.calls)
	}
}

func TestWrap_AppliesLeftToRight(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next llmclient.LLMClient) llmclient.LLMClient {
			return &taggingClient{LLMClient: next, name: name, order: &order}
		}
	}
	base := &mockClient{name: "mock"}
	cli := Wrap(base, tag("outer"), tag("inner"))

	if _, err := cli.GenerateJSON(context.Background(), "p", nil); err != nil {
		t.Fatalf("GenerateJSON error: %v", err)
	}
	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Fatalf("unexpected middleware order: %v", order)
	}
}

type taggingClient struct {
	llmclient.LLMClient
	name  string
	order *[]string
}

func (c *taggingClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	*c.order = append(*c.order, c.name)
	return c.LLMClient.GenerateJSON(ctx, prompt, input)
}

func TestWorkerContextRoundTrip(t *testing.T) {
	ctx := WithWorker(context.Background(), "predictor")
	if got := WorkerFrom(ctx); got != "predictor" {
		t.Fatalf("expected predictor, got %q", got)
	}
	if got := WorkerFrom(context.Background()); got != "unknown" {
		t.Fatalf("expected unknown fallback, got %q", got)
	}
}
