package llm

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestUsageLedger_AggregatesAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "llm_usage.json")

	base := &mockClient{name: "mock:model-a", failCalls: 1}
	cli := Wrap(base, WithUsageLedger(path))

	ctx := context.Background()
	if _, err := cli.GenerateJSON(ctx, "prompt", map[string]any{"k": "v"}); err == nil {
		t.Fatal("expected first call to fail")
	}
	if _, err := cli.GenerateJSON(ctx, "prompt", map[string]any{"k": "v"}); err != nil {
		t.Fatalf("second call: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	var f usageLedgerFile
	if err := json.Unmarshal(b, &f); err != nil {
		t.Fatalf("parse ledger: %v", err)
	}

	dayKey := time.Now().UTC().Format("2006-01-02")
	day, ok := f.Days[dayKey]
	if !ok {
		t.Fatalf("expected entry for %s, got %+v", dayKey, f.Days)
	}
	if day.Requests != 2 || day.Errors != 1 {
		t.Fatalf("unexpected day totals: %+v", day)
	}
	stat := day.Models["mock:model-a"]
	if stat.Requests != 2 || stat.Errors != 1 || stat.Tokens < 1 {
		t.Fatalf("unexpected model stats: %+v", stat)
	}
}

func TestFakeClient_RoutesByWorker(t *testing.T) {
	cli := NewFakeClient(0)
	ctx := context.Background()

	raw, err := cli.GenerateJSON(WithWorker(ctx, "scenario-generator"), "p", nil)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	var scen struct {
		Scenarios []string `json:"scenarios"`
	}
	if err := json.Unmarshal(raw, &scen); err != nil || len(scen.Scenarios) == 0 {
		t.Fatalf("expected scenarios payload, got %s (%v)", string(raw), err)
	}

	raw, err = cli.GenerateJSON(WithWorker(ctx, "researcher"), "p", nil)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	var env struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(raw, &env); err != nil || env.Action != "final" {
		t.Fatalf("expected final envelope, got %s", string(raw))
	}

	raw, err = cli.GenerateJSON(WithWorker(ctx, "predictor"), "p", nil)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	var ans struct {
		Decision string  `json:"decision"`
		PYes     float64 `json:"p_yes"`
		PNo      float64 `json:"p_no"`
	}
	if err := json.Unmarshal(raw, &ans); err != nil {
		t.Fatalf("parse answer: %v", err)
	}
	if ans.Decision != "y" || ans.PYes+ans.PNo != 1.0 {
		t.Fatalf("unexpected answer payload: %s", string(raw))
	}
}
