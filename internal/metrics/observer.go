package metrics

import (
	"time"

	"github.com/varunmitra/altgrammarly/internal/operation"
	"github.com/varunmitra/altgrammarly/internal/transform"
)

// Observer records transform events into the package collectors.
type Observer struct {
	Provider string
}

var _ transform.Observer = Observer{}

func (o Observer) Attempt(op operation.Operation, attempt, maxAttempts, chars int) {
	if attempt == 0 {
		InputChars.Observe(float64(chars))
	}
	AttemptsTotal.WithLabelValues(o.Provider).Inc()
}

func (o Observer) Retry(op operation.Operation, attempt int, delay time.Duration, err error, kind transform.Kind) {
	RetriesTotal.WithLabelValues(o.Provider, string(kind)).Inc()
}

func (o Observer) Success(op operation.Operation, attempts int, elapsed time.Duration, chars int) {
	TransformsTotal.WithLabelValues(o.Provider, string(op), "success").Inc()
	TransformDuration.WithLabelValues(o.Provider, string(op)).Observe(elapsed.Seconds())
}

func (o Observer) Failure(op operation.Operation, err *transform.Error, elapsed time.Duration) {
	TransformsTotal.WithLabelValues(o.Provider, string(op), string(err.Kind)).Inc()
	if err.Kind != transform.KindInvalidInput {
		TransformDuration.WithLabelValues(o.Provider, string(op)).Observe(elapsed.Seconds())
	}
}
