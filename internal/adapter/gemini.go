package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// GeminiConfig configures a GeminiAdapter.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
	// ThinkingBudget caps reasoning tokens. Nil leaves the model default.
	ThinkingBudget *int32
	Temperature    float32
}

// GeminiAdapter connects to the Gemini API through the genai SDK.
type GeminiAdapter struct {
	client         *genai.Client
	model          string
	thinkingBudget *int32
	temperature    float32
}

// NewGeminiAdapter builds the SDK client. A missing API key is not an
// error: the adapter reports itself unavailable and every Generate call
// fails with ErrNotConfigured.
func NewGeminiAdapter(ctx context.Context, cfg GeminiConfig) (*GeminiAdapter, error) {
	g := &GeminiAdapter{
		model:          cfg.Model,
		thinkingBudget: cfg.ThinkingBudget,
		temperature:    cfg.Temperature,
	}
	if cfg.APIKey == "" {
		return g, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.Client,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *GeminiAdapter) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.model)
}

func (g *GeminiAdapter) Generate(ctx context.Context, instruction, text string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("gemini: %w", ErrNotConfigured)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
	}
	if g.thinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{
			IncludeThoughts: false,
			ThinkingBudget:  genai.Ptr(*g.thinkingBudget),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(text), cfg)
	if err != nil {
		return "", geminiError(err)
	}

	out := strings.TrimSpace(resp.Text())
	if out == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	return out, nil
}

func (g *GeminiAdapter) Available() bool {
	return g.client != nil
}

// Models lists the base models that support generateContent. IDs have the
// "models/" prefix removed so they can be used as gemini_model.
func (g *GeminiAdapter) Models(ctx context.Context) ([]ModelInfo, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini: %w", ErrNotConfigured)
	}

	var out []ModelInfo
	for m, err := range g.client.Models.All(ctx) {
		if err != nil {
			return nil, geminiError(err)
		}
		if len(m.SupportedActions) > 0 && !slices.Contains(m.SupportedActions, "generateContent") {
			continue
		}
		id := strings.TrimPrefix(m.Name, "models/")
		name := m.DisplayName
		if name == "" {
			name = id
		}
		out = append(out, ModelInfo{ID: id, Name: name, Provider: "gemini"})
	}
	return out, nil
}

func geminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &StatusError{Provider: "gemini", Code: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message, Err: err}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return &StatusError{Provider: "gemini", Code: apiErrPtr.Code, Status: apiErrPtr.Status, Message: apiErrPtr.Message, Err: err}
	}
	return fmt.Errorf("gemini: request: %w", err)
}
