package busy

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryAcquire(t *testing.T) {
	g := New()

	release, ok := g.TryAcquire()
	require.True(t, ok)

	_, ok = g.TryAcquire()
	assert.False(t, ok, "second acquire must fail while held")

	release()

	release, ok = g.TryAcquire()
	require.True(t, ok, "guard must be free after release")
	release()
}

func TestDoRejectsWhileBusy(t *testing.T) {
	g := New()
	started := make(chan struct{})
	finish := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = g.Do(func() error {
			close(started)
			<-finish
			return nil
		})
	}()

	<-started
	err := g.Do(func() error {
		t.Error("must not run while busy")
		return nil
	})
	assert.ErrorIs(t, err, ErrBusy)

	close(finish)
	wg.Wait()

	assert.NoError(t, g.Do(func() error { return nil }))
}

func TestDoReturnsFnError(t *testing.T) {
	want := errors.New("boom")
	assert.ErrorIs(t, New().Do(func() error { return want }), want)
}

func TestDoAdmitsOneAtATime(t *testing.T) {
	g := New()
	var running, maxRunning, ran atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Do(func() error {
				n := running.Add(1)
				if n > maxRunning.Load() {
					maxRunning.Store(n)
				}
				ran.Add(1)
				time.Sleep(time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxRunning.Load())
	assert.GreaterOrEqual(t, ran.Load(), int32(1))
}
