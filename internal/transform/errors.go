package transform

import (
	"errors"
	"fmt"
)

// Kind classifies a transform failure.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindRateLimited      Kind = "rate_limited"
	KindTransient        Kind = "transient"
	KindPermanent        Kind = "permanent"
	KindExhaustedRetries Kind = "exhausted_retries"
	KindCanceled         Kind = "canceled"
)

// ErrEmptyText is the cause of KindInvalidInput for blank text.
var ErrEmptyText = errors.New("no text provided")

// Error is the only error type Transform returns. Last is the class of the
// final underlying failure and is set for KindExhaustedRetries.
type Error struct {
	Kind     Kind
	Last     Kind
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidInput:
		return fmt.Sprintf("invalid input: %v", e.Err)
	case KindExhaustedRetries:
		return fmt.Sprintf("gave up after %d attempts (last error, %s): %v", e.Attempts, e.Last, e.Err)
	case KindCanceled:
		return fmt.Sprintf("canceled after %d attempts: %v", e.Attempts, e.Err)
	default:
		return fmt.Sprintf("%s failure after %d attempts: %v", e.Kind, e.Attempts, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}
