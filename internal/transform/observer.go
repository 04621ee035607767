package transform

import (
	"log/slog"
	"time"

	"github.com/varunmitra/altgrammarly/internal/operation"
)

// Observer receives the lifecycle events of a transform. Implementations
// must be safe for concurrent use.
type Observer interface {
	Attempt(op operation.Operation, attempt, maxAttempts, chars int)
	Retry(op operation.Operation, attempt int, delay time.Duration, err error, kind Kind)
	Success(op operation.Operation, attempts int, elapsed time.Duration, chars int)
	Failure(op operation.Operation, err *Error, elapsed time.Duration)
}

// Observers fans every event out to each element.
type Observers []Observer

func (obs Observers) Attempt(op operation.Operation, attempt, maxAttempts, chars int) {
	for _, o := range obs {
		o.Attempt(op, attempt, maxAttempts, chars)
	}
}

func (obs Observers) Retry(op operation.Operation, attempt int, delay time.Duration, err error, kind Kind) {
	for _, o := range obs {
		o.Retry(op, attempt, delay, err, kind)
	}
}

func (obs Observers) Success(op operation.Operation, attempts int, elapsed time.Duration, chars int) {
	for _, o := range obs {
		o.Success(op, attempts, elapsed, chars)
	}
}

func (obs Observers) Failure(op operation.Operation, err *Error, elapsed time.Duration) {
	for _, o := range obs {
		o.Failure(op, err, elapsed)
	}
}

// LogObserver writes events to a slog.Logger. A nil Logger uses
// slog.Default().
type LogObserver struct {
	Logger *slog.Logger
}

func (l LogObserver) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l LogObserver) Attempt(op operation.Operation, attempt, maxAttempts, chars int) {
	l.logger().Info("transform attempt",
		"operation", op,
		"attempt", attempt+1,
		"max_attempts", maxAttempts,
		"chars", chars,
	)
}

func (l LogObserver) Retry(op operation.Operation, attempt int, delay time.Duration, err error, kind Kind) {
	l.logger().Warn("transform retry",
		"operation", op,
		"attempt", attempt+1,
		"kind", kind,
		"delay", delay,
		"error", err,
	)
}

func (l LogObserver) Success(op operation.Operation, attempts int, elapsed time.Duration, chars int) {
	l.logger().Info("transform done",
		"operation", op,
		"attempts", attempts,
		"duration_ms", elapsed.Milliseconds(),
		"chars", chars,
	)
}

func (l LogObserver) Failure(op operation.Operation, err *Error, elapsed time.Duration) {
	if err.Kind == KindInvalidInput {
		l.logger().Debug("transform rejected", "operation", op, "error", err.Err)
		return
	}
	l.logger().Error("transform failed",
		"operation", op,
		"kind", err.Kind,
		"attempts", err.Attempts,
		"duration_ms", elapsed.Milliseconds(),
		"error", err.Err,
	)
}
