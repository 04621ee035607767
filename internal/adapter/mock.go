package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MockAdapter returns simulated responses with a configurable delay.
// Used for development and testing without a real LLM backend.
type MockAdapter struct {
	Delay time.Duration
}

func (m *MockAdapter) Name() string { return "Mock" }

// Generate trims the text and capitalizes its first letter. The instruction
// is ignored.
func (m *MockAdapter) Generate(ctx context.Context, instruction, text string) (string, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return "", fmt.Errorf("mock: %w", ctx.Err())
		}
	}

	out := strings.TrimSpace(text)
	if len(out) > 0 && out[0] >= 'a' && out[0] <= 'z' {
		out = strings.ToUpper(out[:1]) + out[1:]
	}
	return out, nil
}

func (m *MockAdapter) Available() bool { return true }

func (m *MockAdapter) Models(ctx context.Context) ([]ModelInfo, error) {
	return []ModelInfo{{ID: "mock", Name: m.Name(), Provider: "mock"}}, nil
}
