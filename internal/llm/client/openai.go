package llmclient

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient calls the OpenAI Chat Completions API through the official
// community SDK. JSON mode is requested for structured output.
type OpenAIClient struct {
	cli      *openai.Client
	model    string
	tokenCap int
}

func NewOpenAIClient(apiKey, model string, tokenCap int) (*OpenAIClient, error) {
	if tokenCap <= 0 {
		tokenCap = 12000
	}
	return &OpenAIClient{
		cli:      openai.NewClient(apiKey),
		model:    model,
		tokenCap: tokenCap,
	}, nil
}

func (o *OpenAIClient) Name() string { return "OpenAI:" + o.model }
func (o *OpenAIClient) Close() error { return nil }
func (o *OpenAIClient) CountTokens(text string) int {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	return CountTokens(text)
}
func (o *OpenAIClient) TokenCapacity() int { return o.tokenCap }

func (o *OpenAIClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	in, _ := json.MarshalIndent(input, "", "  ")
	resp, err := o.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: "[INPUT JSON]\n" + string(in)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, ErrInvalidJSON
	}
	raw := json.RawMessage(resp.Choices[0].Message.Content)
	var scratch any
	if err := json.Unmarshal(raw, &scratch); err != nil {
		return nil, ErrInvalidJSON
	}
	return raw, nil
}

func (o *OpenAIClient) GenerateText(ctx context.Context, prompt string, input any) (string, error) {
	in, _ := json.MarshalIndent(input, "", "  ")
	resp, err := o.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt},
			{Role: openai.ChatMessageRoleUser, Content: "[INPUT JSON]\n" + string(in)},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrInvalidJSON
	}
	return resp.Choices[0].Message.Content, nil
}
