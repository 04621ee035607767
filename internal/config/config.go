package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "ALTGRAMMARLY_"

// keyDelim separates nested config keys. Persona keys are application
// names such as "draw.io", so "." cannot be used.
const keyDelim = "::"

// MaxAttemptsLimit bounds max_attempts.
const MaxAttemptsLimit = 10

// Providers that can back the transform client.
const (
	ProviderGemini   = "gemini"
	ProviderClaude   = "claude"
	ProviderLlamaCpp = "llamacpp"
	ProviderOllama   = "ollama"
	ProviderMock     = "mock"
)

// Config holds all application configuration.
type Config struct {
	Port     int    `koanf:"port"`
	Provider string `koanf:"provider"`

	GeminiAPIKey         string `koanf:"gemini_api_key"`
	GeminiModel          string `koanf:"gemini_model"`
	GeminiThinkingBudget int    `koanf:"gemini_thinking_budget"`

	ClaudeAPIKey string `koanf:"claude_api_key"`
	ClaudeModel  string `koanf:"claude_model"`

	LlamaCppURL   string `koanf:"llamacpp_url"`
	LlamaCppModel string `koanf:"llamacpp_model"`

	OllamaURL   string `koanf:"ollama_url"`
	OllamaModel string `koanf:"ollama_model"`
	// OllamaKeepAlive is passed through as keep_alive, e.g. "10m" or "-1".
	OllamaKeepAlive string `koanf:"ollama_keep_alive"`

	// APIKey protects the HTTP API. Empty disables auth.
	APIKey string `koanf:"api_key"`
	// RateLimit is requests per minute per client IP. Zero disables it.
	RateLimit int `koanf:"rate_limit"`

	RequestTimeout time.Duration `koanf:"request_timeout"`
	MaxAttempts    int           `koanf:"max_attempts"`
	BaseDelay      time.Duration `koanf:"base_delay"`

	LogLevel string `koanf:"log_level"`
	LogJSON  bool   `koanf:"log_json"`

	// Personas adds or overrides app name → persona mappings.
	Personas map[string]string `koanf:"personas"`
}

func defaults() Config {
	return Config{
		Port:                 8090,
		Provider:             ProviderGemini,
		GeminiModel:          "gemini-2.5-flash",
		GeminiThinkingBudget: 100,
		ClaudeModel:          "claude-sonnet-4-5-20250929",
		LlamaCppModel:        "qwen2.5-1.5b-gpu",
		OllamaModel:          "qwen2.5:1.5b",
		RateLimit:            10,
		RequestTimeout:       60 * time.Second,
		MaxAttempts:          5,
		BaseDelay:            time.Second,
		LogLevel:             "info",
	}
}

// Load reads configuration from a YAML file (if path is non-empty), then
// applies ALTGRAMMARLY_* environment overrides. GEMINI_API_KEY fills
// gemini_api_key when nothing else set it.
func Load(path string) (Config, error) {
	k := koanf.New(keyDelim)

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	err := k.Load(env.ProviderWithValue(envPrefix, keyDelim, func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("config: load env: %w", err)
	}

	cfg := defaults()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges. Credentials are opaque and only checked by
// the provider itself.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderClaude, ProviderLlamaCpp, ProviderOllama, ProviderMock:
	default:
		return fmt.Errorf("config: unknown provider %q", c.Provider)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("config: rate_limit must not be negative, got %d", c.RateLimit)
	}
	if c.MaxAttempts < 1 || c.MaxAttempts > MaxAttemptsLimit {
		return fmt.Errorf("config: max_attempts must be between 1 and %d, got %d", MaxAttemptsLimit, c.MaxAttempts)
	}
	if c.BaseDelay <= 0 {
		return fmt.Errorf("config: base_delay must be positive, got %s", c.BaseDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.Provider == ProviderLlamaCpp && c.LlamaCppURL == "" {
		return errors.New("config: provider llamacpp needs llamacpp_url")
	}
	if c.Provider == ProviderOllama && c.OllamaURL == "" {
		return errors.New("config: provider ollama needs ollama_url")
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}
