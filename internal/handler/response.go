package handler

import (
	"encoding/json"
	"net/http"

	"github.com/varunmitra/altgrammarly/internal/transform"
)

type errorResponse struct {
	Error string         `json:"error"`
	Kind  transform.Kind `json:"kind,omitempty"`
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeKindError(w, code, msg, "")
}

func writeKindError(w http.ResponseWriter, code int, msg string, kind transform.Kind) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(errorResponse{Error: msg, Kind: kind})
}
