package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// fakeClock is advanced by hand so window arithmetic is exact.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(limit int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(limit, window)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiterReserve(t *testing.T) {
	rl, clock := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if ok, _ := rl.Reserve("127.0.0.1"); !ok {
			t.Fatalf("hit %d rejected", i+1)
		}
		clock.advance(10 * time.Second)
	}

	ok, wait := rl.Reserve("127.0.0.1")
	if ok {
		t.Fatal("4th hit admitted")
	}
	// first hit was at t0, now is t0+30s
	if wait != 30*time.Second {
		t.Errorf("wait: got %s, want 30s", wait)
	}

	clock.advance(wait)
	if !rl.Allow("127.0.0.1") {
		t.Error("hit after oldest expired should be admitted")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl, _ := newTestLimiter(1, time.Minute)

	if !rl.Allow("10.0.0.1") {
		t.Error("first key rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second key rejected")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("first key admitted twice")
	}
}

func TestRateLimiterDropsIdleKeys(t *testing.T) {
	rl, clock := newTestLimiter(2, time.Minute)
	rl.Allow("a")
	rl.Allow("b")
	if n := rl.Len(); n != 2 {
		t.Fatalf("tracked keys: got %d, want 2", n)
	}

	clock.advance(time.Minute)
	if n := rl.Len(); n != 0 {
		t.Errorf("tracked keys after window: got %d, want 0", n)
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, clock := newTestLimiter(2, time.Minute)
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/transform", nil)
		req.RemoteAddr = "192.168.1.20:51234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	send()
	clock.advance(15500 * time.Millisecond)
	send()

	w := send()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	// 44.5s left, rounded up
	if got := w.Header().Get("Retry-After"); got != "45" {
		t.Errorf("Retry-After: got %q, want %q", got, "45")
	}
}

func TestRateLimitNilLimiter(t *testing.T) {
	handler := RateLimit(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: got %d, want %d", i, w.Code, http.StatusOK)
		}
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"[::1]:8090", "::1"},
		{"no-port", "no-port"},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = tt.remote
		if got := clientIP(r); got != tt.want {
			t.Errorf("clientIP(%q): got %q, want %q", tt.remote, got, tt.want)
		}
	}
}
