package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/varunmitra/altgrammarly/internal/adapter"
	"github.com/varunmitra/altgrammarly/internal/busy"
	"github.com/varunmitra/altgrammarly/internal/handler"
	"github.com/varunmitra/altgrammarly/internal/middleware"
)

// Options holds what SetupMux needs to serve the API.
type Options struct {
	Transformer handler.Transformer
	Adapter     adapter.LLMAdapter
	Guard       *busy.Guard
	APIKey      string
	// RateLimit is the per-IP request budget per minute. Zero disables it.
	RateLimit int
	// Timeout bounds a whole request, retries included. Zero disables it.
	Timeout time.Duration
}

// SetupMux wires handlers with the full middleware chain.
func SetupMux(opts Options) http.Handler {
	guard := opts.Guard
	if guard == nil {
		guard = busy.New()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", handler.Health(opts.Adapter))
	mux.HandleFunc("/api/operations", handler.Operations())
	mux.HandleFunc("/api/models", handler.Models(opts.Adapter))
	mux.HandleFunc("/api/transform", handler.Transform(opts.Transformer, guard))
	mux.Handle("/metrics", promhttp.Handler())

	var rl *middleware.RateLimiter
	if opts.RateLimit > 0 {
		rl = middleware.NewRateLimiter(opts.RateLimit, time.Minute)
	}
	return middleware.Chain(mux, rl, opts.APIKey, opts.Timeout)
}
