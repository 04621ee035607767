package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestGemini(t *testing.T, h http.HandlerFunc) *GeminiAdapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	budget := int32(100)
	g, err := NewGeminiAdapter(context.Background(), GeminiConfig{
		APIKey:         "test-key",
		Model:          "gemini-2.5-flash",
		BaseURL:        srv.URL,
		Client:         &http.Client{Timeout: 5 * time.Second},
		ThinkingBudget: &budget,
		Temperature:    1.0,
	})
	if err != nil {
		t.Fatalf("NewGeminiAdapter: %v", err)
	}
	return g
}

func TestGeminiAdapterGenerate(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if _, ok := req["systemInstruction"]; !ok {
			t.Errorf("request missing systemInstruction: %v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{
					"role":  "model",
					"parts": []map[string]any{{"text": "\nThe team did not meet their deadline.  "}},
				},
				"finishReason": "STOP",
			}},
		})
	})

	got, err := g.Generate(context.Background(), "Correct it.", "the team didnt met there deadline")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "The team did not meet their deadline." {
		t.Errorf("got %q", got)
	}
}

func TestGeminiAdapterGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		status string
		want   Class
	}{
		{"quota", http.StatusTooManyRequests, "RESOURCE_EXHAUSTED", ClassRateLimited},
		{"bad key", http.StatusBadRequest, "INVALID_ARGUMENT", ClassPermanent},
		{"denied", http.StatusForbidden, "PERMISSION_DENIED", ClassPermanent},
		{"internal", http.StatusInternalServerError, "INTERNAL", ClassTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.code)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": tt.code, "message": "failure", "status": tt.status},
				})
			})

			_, err := g.Generate(context.Background(), "prompt", "hello")
			var se *StatusError
			if !errors.As(err, &se) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if se.Code != tt.code {
				t.Errorf("code: got %d, want %d", se.Code, tt.code)
			}
			if got := Classify(err); got != tt.want {
				t.Errorf("class: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeminiAdapterWithoutKey(t *testing.T) {
	g, err := NewGeminiAdapter(context.Background(), GeminiConfig{Model: "gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("NewGeminiAdapter: %v", err)
	}
	if g.Available() {
		t.Error("expected unavailable without API key")
	}
	_, err = g.Generate(context.Background(), "prompt", "hello")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("got %v, want ErrNotConfigured", err)
	}
	if Classify(err) != ClassPermanent {
		t.Error("missing key should be permanent")
	}
}

func TestGeminiAdapterName(t *testing.T) {
	g, _ := NewGeminiAdapter(context.Background(), GeminiConfig{Model: "gemini-2.5-flash"})
	if g.Name() != "Gemini (gemini-2.5-flash)" {
		t.Errorf("got %q", g.Name())
	}
}

func TestGeminiAdapterModels(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !strings.HasSuffix(r.URL.Path, "/models") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{
				{
					"name":                       "models/gemini-2.5-flash",
					"displayName":                "Gemini 2.5 Flash",
					"supportedGenerationMethods": []string{"generateContent", "countTokens"},
				},
				{
					"name":                       "models/text-embedding-004",
					"displayName":                "Text Embedding 004",
					"supportedGenerationMethods": []string{"embedContent"},
				},
				{
					"name": "models/gemini-2.5-pro",
				},
			},
		})
	})

	got, err := g.Models(context.Background())
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	want := []ModelInfo{
		{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Provider: "gemini"},
		{ID: "gemini-2.5-pro", Name: "gemini-2.5-pro", Provider: "gemini"},
	}
	if len(got) != len(want) {
		t.Fatalf("models: got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("model %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGeminiAdapterModelsWithoutKey(t *testing.T) {
	g, _ := NewGeminiAdapter(context.Background(), GeminiConfig{Model: "gemini-2.5-flash"})
	if _, err := g.Models(context.Background()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("got %v, want ErrNotConfigured", err)
	}
}
