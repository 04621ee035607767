package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// OllamaAdapter talks to a local Ollama server over its native /api/chat
// endpoint.
type OllamaAdapter struct {
	BaseURL string
	Model   string
	Client  *http.Client
	// KeepAlive is how long Ollama keeps the model loaded after a call,
	// in Ollama duration syntax ("5m", "-1"). Empty uses the server default.
	KeepAlive string
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaChatRequest struct {
	Model     string          `json:"model"`
	Messages  []ollamaMessage `json:"messages"`
	Stream    bool            `json:"stream"`
	Options   ollamaOptions   `json:"options"`
	KeepAlive string          `json:"keep_alive,omitempty"`
}

type ollamaChatResponse struct {
	Message    ollamaMessage `json:"message"`
	Done       bool          `json:"done"`
	DoneReason string        `json:"done_reason"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type ollamaErrorResponse struct {
	Error string `json:"error"`
}

func (o *OllamaAdapter) Name() string {
	return fmt.Sprintf("Ollama (%s)", o.Model)
}

func (o *OllamaAdapter) endpoint(path string) string {
	return strings.TrimRight(o.BaseURL, "/") + path
}

func (o *OllamaAdapter) client() *http.Client {
	if o.Client == nil {
		return http.DefaultClient
	}
	return o.Client
}

func (o *OllamaAdapter) Generate(ctx context.Context, instruction, text string) (string, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model: o.Model,
		Messages: []ollamaMessage{
			{Role: "system", Content: instruction},
			{Role: "user", Content: text},
		},
		Options:   ollamaOptions{Temperature: 1.0},
		KeepAlive: o.KeepAlive,
	})
	if err != nil {
		return "", fmt.Errorf("ollama: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint("/api/chat"), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ollama: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ollamaStatusError(resp)
	}

	var chat ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("ollama: decode response: %w", err)
	}
	if !chat.Done {
		return "", fmt.Errorf("ollama: incomplete response (done_reason %q): %w", chat.DoneReason, ErrEmptyResponse)
	}

	out := strings.TrimSpace(chat.Message.Content)
	if out == "" {
		return "", fmt.Errorf("ollama: %w", ErrEmptyResponse)
	}
	return out, nil
}

func ollamaStatusError(resp *http.Response) *StatusError {
	se := &StatusError{Provider: "ollama", Code: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return se
	}
	var e ollamaErrorResponse
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		se.Message = e.Error
	}
	return se
}

func (o *OllamaAdapter) tags(ctx context.Context) (ollamaTagsResponse, error) {
	var tags ollamaTagsResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.endpoint("/api/tags"), nil)
	if err != nil {
		return tags, fmt.Errorf("ollama: create request: %w", err)
	}
	resp, err := o.client().Do(req)
	if err != nil {
		return tags, fmt.Errorf("ollama: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return tags, ollamaStatusError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return tags, fmt.Errorf("ollama: decode tags: %w", err)
	}
	return tags, nil
}

// Models lists the locally pulled models.
func (o *OllamaAdapter) Models(ctx context.Context) ([]ModelInfo, error) {
	tags, err := o.tags(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ModelInfo, 0, len(tags.Models))
	for _, m := range tags.Models {
		out = append(out, ModelInfo{ID: m.Name, Name: m.Name, Provider: "ollama"})
	}
	return out, nil
}

// Available reports whether the server answers and has Model pulled.
func (o *OllamaAdapter) Available() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	tags, err := o.tags(ctx)
	if err != nil {
		return false
	}
	for _, m := range tags.Models {
		if m.Name == o.Model || m.Name == o.Model+":latest" {
			return true
		}
	}
	return false
}
