package llm

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	llmclient "foresight/internal/llm/client"
)

// UsageLedger tracks LLM usage statistics to a JSON file.
type UsageLedger struct {
	mu   sync.Mutex
	path string
}

type usageLedgerFile struct {
	UpdatedAt string              `json:"updated_at"`
	Days      map[string]usageDay `json:"days"`
}

type usageDay struct {
	Requests int64                `json:"requests"`
	Tokens   int64                `json:"tokens"`
	Errors   int64                `json:"errors"`
	Models   map[string]usageStat `json:"models"`
}

type usageStat struct {
	Requests int64 `json:"requests"`
	Tokens   int64 `json:"tokens"`
	Errors   int64 `json:"errors"`
}

func NewUsageLedger(path string) *UsageLedger {
	return &UsageLedger{path: path}
}

// WithUsageLedger returns a middleware that records request counts, rough
// token estimates, and error counts per model per day.
func WithUsageLedger(path string) Middleware {
	ledger := NewUsageLedger(path)
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &usageClient{next: next, ledger: ledger}
	}
}

type usageClient struct {
	next   llmclient.LLMClient
	ledger *UsageLedger
}

func (u *usageClient) Name() string                { return u.next.Name() }
func (u *usageClient) Close() error                { return u.next.Close() }
func (u *usageClient) CountTokens(text string) int { return u.next.CountTokens(text) }
func (u *usageClient) TokenCapacity() int          { return u.next.TokenCapacity() }

func (u *usageClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	tokens := estimateCallTokens(u.next, prompt, input)
	out, err := u.next.GenerateJSON(ctx, prompt, input)
	u.ledger.record(u.next.Name(), int64(tokens), err != nil)
	return out, err
}

func (u *usageClient) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	tokens := estimateCallTokens(u.next, prompt, input)
	out, err := u.next.GenerateText(ctx, prompt, input)
	u.ledger.record(u.next.Name(), int64(tokens), err != nil)
	return out, err
}

func estimateCallTokens(cli llmclient.LLMClient, prompt string, input any) int {
	in, _ := json.Marshal(input)
	t := cli.CountTokens(prompt + "\n" + string(in))
	if t < 1 {
		t = 1
	}
	return t
}

func (l *UsageLedger) record(model string, tokens int64, hasErr bool) {
	if l == nil || l.path == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	dayKey := time.Now().UTC().Format("2006-01-02")
	f := usageLedgerFile{Days: map[string]usageDay{}}
	if b, err := os.ReadFile(l.path); err == nil {
		_ = json.Unmarshal(b, &f)
	}
	if f.Days == nil {
		f.Days = map[string]usageDay{}
	}
	day := f.Days[dayKey]
	if day.Models == nil {
		day.Models = map[string]usageStat{}
	}
	day.Requests++
	day.Tokens += tokens
	stat := day.Models[model]
	stat.Requests++
	stat.Tokens += tokens
	if hasErr {
		day.Errors++
		stat.Errors++
	}
	day.Models[model] = stat
	f.Days[dayKey] = day
	f.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	_ = os.MkdirAll(filepath.Dir(l.path), 0o755)
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(l.path, b, 0o644)
}
