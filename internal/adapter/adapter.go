package adapter

import "context"

// LLMAdapter is the remote transform capability. Exactly one implementation
// is selected at startup from configuration.
type LLMAdapter interface {
	Name() string
	// Generate sends instruction as the system prompt and text as the user
	// message, returning the model output trimmed of surrounding whitespace.
	Generate(ctx context.Context, instruction, text string) (string, error)
	Available() bool
}

// ModelInfo is exposed via GET /api/models and `altgrammarly models`.
type ModelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// ModelLister is implemented by adapters that can report the models their
// backend serves.
type ModelLister interface {
	Models(ctx context.Context) ([]ModelInfo, error)
}

// ListModels asks a for its models. Adapters that cannot list report a
// single entry named after themselves.
func ListModels(ctx context.Context, a LLMAdapter) ([]ModelInfo, error) {
	if ml, ok := a.(ModelLister); ok {
		return ml.Models(ctx)
	}
	return []ModelInfo{{ID: a.Name(), Name: a.Name()}}, nil
}
