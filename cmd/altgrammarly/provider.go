package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/varunmitra/altgrammarly/internal/adapter"
	"github.com/varunmitra/altgrammarly/internal/config"
	"github.com/varunmitra/altgrammarly/internal/logging"
	"github.com/varunmitra/altgrammarly/internal/metrics"
	"github.com/varunmitra/altgrammarly/internal/persona"
	"github.com/varunmitra/altgrammarly/internal/transform"
)

// buildAdapter returns the single provider named by cfg.Provider.
func buildAdapter(ctx context.Context, cfg config.Config, logger *slog.Logger) (adapter.LLMAdapter, error) {
	client := &http.Client{Timeout: cfg.RequestTimeout}

	switch cfg.Provider {
	case config.ProviderMock:
		logger.Info("provider: mock adapter enabled")
		return &adapter.MockAdapter{Delay: 500 * time.Millisecond}, nil

	case config.ProviderGemini:
		budget := int32(cfg.GeminiThinkingBudget)
		g, err := adapter.NewGeminiAdapter(ctx, adapter.GeminiConfig{
			APIKey:         cfg.GeminiAPIKey,
			Model:          cfg.GeminiModel,
			Client:         client,
			ThinkingBudget: &budget,
			Temperature:    1.0,
		})
		if err != nil {
			return nil, err
		}
		if cfg.GeminiAPIKey == "" {
			logger.Warn("provider: gemini has no API key, set GEMINI_API_KEY")
		} else {
			logger.Info("provider: gemini", "model", cfg.GeminiModel, "api_key", logging.Mask(cfg.GeminiAPIKey))
		}
		return g, nil

	case config.ProviderClaude:
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("provider: claude has no API key")
		} else {
			logger.Info("provider: claude", "model", cfg.ClaudeModel, "api_key", logging.Mask(cfg.ClaudeAPIKey))
		}
		return &adapter.ClaudeAdapter{
			APIKey: cfg.ClaudeAPIKey,
			Model:  cfg.ClaudeModel,
			Client: client,
		}, nil

	case config.ProviderLlamaCpp:
		logger.Info("provider: llama.cpp", "url", cfg.LlamaCppURL, "model", cfg.LlamaCppModel)
		return &adapter.LlamaCppAdapter{
			BaseURL: cfg.LlamaCppURL,
			Model:   cfg.LlamaCppModel,
			Client:  client,
		}, nil

	case config.ProviderOllama:
		logger.Info("provider: ollama", "url", cfg.OllamaURL, "model", cfg.OllamaModel)
		return &adapter.OllamaAdapter{
			BaseURL:   cfg.OllamaURL,
			Model:     cfg.OllamaModel,
			Client:    client,
			KeepAlive: cfg.OllamaKeepAlive,
		}, nil
	}

	return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
}

// newClient wraps a in the retrying transform client with logging and
// metrics observers attached.
func newClient(cfg config.Config, a adapter.LLMAdapter, logger *slog.Logger) *transform.Client {
	return transform.New(a,
		transform.WithPolicy(transform.Policy{MaxAttempts: cfg.MaxAttempts, BaseDelay: cfg.BaseDelay}),
		transform.WithPersonas(persona.New(cfg.Personas)),
		transform.WithObserver(transform.Observers{
			transform.LogObserver{Logger: logger},
			metrics.Observer{Provider: a.Name()},
		}),
	)
}
