package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrEmptyResponse is returned when the provider answers without any text.
// It is treated as transient.
var ErrEmptyResponse = errors.New("empty response")

// ErrNotConfigured is returned when a provider is missing its credential.
// It is permanent.
var ErrNotConfigured = errors.New("provider not configured")

// StatusError is a provider failure that carries an HTTP status code.
type StatusError struct {
	Provider string
	Code     int
	Status   string
	Message  string
	Err      error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.Code)
	}
	return fmt.Sprintf("%s: API error %d: %s", e.Provider, e.Code, e.Message)
}

func (e *StatusError) Unwrap() error { return e.Err }

// Class tells the retry loop what to do with an error.
type Class int

const (
	ClassTransient Class = iota
	ClassRateLimited
	ClassPermanent
)

func (c Class) String() string {
	switch c {
	case ClassRateLimited:
		return "rate_limited"
	case ClassPermanent:
		return "permanent"
	default:
		return "transient"
	}
}

// Classify maps an adapter error to a retry class. 429 and
// RESOURCE_EXHAUSTED are rate limits; 408 and 5xx are transient; any other
// status is permanent. Errors without a status (network failures, empty
// responses, client timeouts) are transient. Cancellation of the caller's
// context is detected by the caller, not here.
func Classify(err error) Class {
	if errors.Is(err, ErrNotConfigured) {
		return ClassPermanent
	}
	var se *StatusError
	if errors.As(err, &se) {
		return classifyStatus(se.Code, se.Status)
	}
	return ClassTransient
}

func classifyStatus(code int, status string) Class {
	switch {
	case code == http.StatusTooManyRequests, status == "RESOURCE_EXHAUSTED":
		return ClassRateLimited
	case code == http.StatusRequestTimeout, code >= 500:
		return ClassTransient
	case code >= 400:
		return ClassPermanent
	default:
		return ClassTransient
	}
}
