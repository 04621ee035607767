package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// ClaudeAdapter connects to the Anthropic Messages API.
type ClaudeAdapter struct {
	BaseURL string
	APIKey  string
	Model   string
	Client  *http.Client
}

func (c *ClaudeAdapter) Name() string {
	return fmt.Sprintf("Claude (%s)", c.Model)
}

// Models reports the configured model.
func (c *ClaudeAdapter) Models(ctx context.Context) ([]ModelInfo, error) {
	return []ModelInfo{{ID: c.Model, Name: c.Name(), Provider: "claude"}}, nil
}

func (c *ClaudeAdapter) Generate(ctx context.Context, instruction, text string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("claude: %w", ErrNotConfigured)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(c.APIKey),
		option.WithMaxRetries(0),
	}
	if c.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(c.BaseURL))
	}
	if c.Client != nil {
		opts = append(opts, option.WithHTTPClient(c.Client))
	}
	client := anthropic.NewClient(opts...)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.Model),
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: instruction},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: "claude", Code: apiErr.StatusCode, Message: apiErr.Error(), Err: err}
		}
		return "", fmt.Errorf("claude: request: %w", err)
	}

	var result strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}

	out := strings.TrimSpace(result.String())
	if out == "" {
		return "", fmt.Errorf("claude: %w", ErrEmptyResponse)
	}
	return out, nil
}

func (c *ClaudeAdapter) Available() bool {
	return c.APIKey != ""
}
