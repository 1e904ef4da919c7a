package search

import (
	"context"
	"encoding/json"
	"fmt"

	"foresight/internal/llmtool"
)

// ToolName is the identifier the research loop exposes to the model.
const ToolName = "web_search"

// ToolProvider adapts a search Client to the llmtool loop. The retry
// policy runs inside Call, so exhausted retries surface as a single
// tool-execution error recorded in the loop's ToolResult.
type ToolProvider struct {
	Client Client
	Retry  RetryPolicy
}

type toolInput struct {
	Query string `json:"query"`
}

func (p *ToolProvider) Specs() []llmtool.ToolSpec {
	return []llmtool.ToolSpec{{
		Name:        ToolName,
		Description: "Search the web for recent information. Returns ranked result snippets.",
		InputHint:   `{"query":"string"}`,
	}}
}

func (p *ToolProvider) Call(ctx context.Context, name string, input json.RawMessage) (json.RawMessage, error) {
	if name != ToolName {
		return nil, fmt.Errorf("search: unknown tool %q", name)
	}
	var in toolInput
	if err := json.Unmarshal(input, &in); err != nil {
		return nil, fmt.Errorf("search: bad tool input: %w", err)
	}
	if in.Query == "" {
		return nil, fmt.Errorf("search: empty query")
	}

	var results []Result
	err := p.Retry.Do(ctx, func() error {
		var err error
		results, err = p.Client.Search(ctx, in.Query)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("search: %q failed: %w", in.Query, err)
	}
	out, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}
	return out, nil
}
