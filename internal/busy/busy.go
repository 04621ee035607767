// Package busy provides the caller-owned guard that keeps at most one
// transform in flight per process.
package busy

import (
	"errors"

	"golang.org/x/sync/semaphore"
)

// ErrBusy is returned when a transform is already running.
var ErrBusy = errors.New("already processing")

// Guard admits one holder at a time.
type Guard struct {
	sem *semaphore.Weighted
}

func New() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

// TryAcquire takes the guard without waiting. The returned release func
// must be called exactly once when ok is true.
func (g *Guard) TryAcquire() (release func(), ok bool) {
	if !g.sem.TryAcquire(1) {
		return nil, false
	}
	return func() { g.sem.Release(1) }, true
}

// Do runs fn while holding the guard, or returns ErrBusy without running
// it.
func (g *Guard) Do(fn func() error) error {
	release, ok := g.TryAcquire()
	if !ok {
		return ErrBusy
	}
	defer release()
	return fn()
}
