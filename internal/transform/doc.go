// Package transform rewrites text with one of the fixed operations by
// calling the configured LLM adapter, retrying rate-limited and transient
// failures with exponential backoff.
//
// A Client holds no per-request state and is safe to call from several
// goroutines. Keeping a single transform in flight is the caller's job; see
// package busy.
package transform
