package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/varunmitra/altgrammarly/internal/adapter"
)

// Models serves GET /api/models with the models the provider reports.
func Models(a adapter.LLMAdapter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		models, err := adapter.ListModels(r.Context(), a)
		switch {
		case errors.Is(err, adapter.ErrNotConfigured):
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		case err != nil:
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		if models == nil {
			models = []adapter.ModelInfo{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models)
	}
}
