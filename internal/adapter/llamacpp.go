package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// LlamaCppAdapter connects to llama-server's OpenAI-compatible
// /v1/chat/completions.
type LlamaCppAdapter struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func (l *LlamaCppAdapter) Name() string {
	return fmt.Sprintf("llama.cpp (%s)", l.Model)
}

func (l *LlamaCppAdapter) sdk() openai.Client {
	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(l.BaseURL, "/") + "/v1/"),
		option.WithAPIKey("llama.cpp"),
		option.WithMaxRetries(0),
	}
	if l.Client != nil {
		opts = append(opts, option.WithHTTPClient(l.Client))
	}
	return openai.NewClient(opts...)
}

func (l *LlamaCppAdapter) Generate(ctx context.Context, instruction, text string) (string, error) {
	client := l.sdk()

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(l.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(instruction),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", llamaCppError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llamacpp: %w", ErrEmptyResponse)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("llamacpp: %w", ErrEmptyResponse)
	}
	return out, nil
}

// Models lists what llama-server reports on /v1/models. It usually serves
// a single model.
func (l *LlamaCppAdapter) Models(ctx context.Context) ([]ModelInfo, error) {
	client := l.sdk()
	page, err := client.Models.List(ctx)
	if err != nil {
		return nil, llamaCppError(err)
	}
	out := make([]ModelInfo, 0, len(page.Data))
	for _, m := range page.Data {
		out = append(out, ModelInfo{ID: m.ID, Name: m.ID, Provider: "llamacpp"})
	}
	return out, nil
}

func llamaCppError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: "llamacpp", Code: apiErr.StatusCode, Message: apiErr.Message, Err: err}
	}
	return fmt.Errorf("llamacpp: request: %w", err)
}

func (l *LlamaCppAdapter) Available() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(l.BaseURL, "/")+"/health", nil)
	if err != nil {
		return false
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
