package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts HTTP requests by method, path, and status code.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "altgrammarly_requests_total",
		Help: "Total HTTP requests processed.",
	}, []string{"method", "path", "status"})

	// TransformDuration tracks end-to-end transform latency, backoff included.
	TransformDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "altgrammarly_transform_duration_seconds",
		Help:    "Time spent on a transform, including retries.",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
	}, []string{"provider", "operation"})

	// TransformsTotal counts finished transforms by outcome: "success" or a
	// failure kind.
	TransformsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "altgrammarly_transforms_total",
		Help: "Finished transforms by outcome.",
	}, []string{"provider", "operation", "outcome"})

	// AttemptsTotal counts calls made to the provider.
	AttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "altgrammarly_provider_attempts_total",
		Help: "Calls made to the LLM provider.",
	}, []string{"provider"})

	// RetriesTotal counts retries by the class of the failure that caused them.
	RetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "altgrammarly_retries_total",
		Help: "Retries scheduled after a failed provider call.",
	}, []string{"provider", "kind"})

	// InputChars tracks the distribution of input text lengths.
	InputChars = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "altgrammarly_input_chars",
		Help:    "Number of characters in transform input text.",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	// AdapterAvailable tracks whether the configured provider is reachable.
	AdapterAvailable = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "altgrammarly_adapter_available",
		Help: "Whether the LLM adapter is available (1) or not (0).",
	}, []string{"adapter"})
)
