package handler

import (
	"encoding/json"
	"net/http"

	"github.com/varunmitra/altgrammarly/internal/adapter"
	"github.com/varunmitra/altgrammarly/internal/metrics"
)

type providerStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type healthResponse struct {
	Status   string         `json:"status"`
	Provider providerStatus `json:"provider"`
}

func Health(a adapter.LLMAdapter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := providerStatus{Name: a.Name(), Available: a.Available()}
		if s.Available {
			metrics.AdapterAvailable.WithLabelValues(a.Name()).Set(1)
		} else {
			metrics.AdapterAvailable.WithLabelValues(a.Name()).Set(0)
			s.Reason = unavailableReason(a)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(healthResponse{
			Status:   "ok",
			Provider: s,
		})
	}
}

func unavailableReason(a adapter.LLMAdapter) string {
	switch a.(type) {
	case *adapter.GeminiAdapter, *adapter.ClaudeAdapter:
		return "no API key"
	case *adapter.OllamaAdapter:
		return "ollama unreachable or model not pulled"
	case *adapter.LlamaCppAdapter:
		return "llama-server unreachable"
	default:
		return "unavailable"
	}
}
