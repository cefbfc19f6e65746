package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const claudeMaxTokens = 256

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &ClaudeClient{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(prompt),
		},
		MaxTokens: claudeMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("claude completion failed: %w", err)
	}

	for _, content := range resp.Content {
		if content.Text != nil {
			return *content.Text, nil
		}
	}
	return "", fmt.Errorf("no response content")
}
