package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// RateLimiter admits at most limit hits per key within any window-long
// span. Keys whose hits have all expired are dropped.
type RateLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	hits      map[string][]time.Time
	lastSweep time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		hits:   make(map[string][]time.Time),
	}
}

// Allow is Reserve without the wait hint.
func (rl *RateLimiter) Allow(key string) bool {
	ok, _ := rl.Reserve(key)
	return ok
}

// Reserve records a hit for key when it is under the limit. Otherwise it
// reports how long until the oldest hit in the window expires.
func (rl *RateLimiter) Reserve(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(now)
	}
	live := expire(rl.hits[key], now.Add(-rl.window))

	if len(live) >= rl.limit {
		rl.hits[key] = live
		return false, live[0].Add(rl.window).Sub(now)
	}
	rl.hits[key] = append(live, now)
	return true, 0
}

// Len returns the number of keys currently tracked.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.sweep(rl.now())
	return len(rl.hits)
}

func (rl *RateLimiter) sweep(now time.Time) {
	cutoff := now.Add(-rl.window)
	for key, ts := range rl.hits {
		if len(expire(ts, cutoff)) == 0 {
			delete(rl.hits, key)
		}
	}
	rl.lastSweep = now
}

// expire drops hits at or before cutoff. ts is kept in arrival order.
func expire(ts []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(ts) && !ts[i].After(cutoff) {
		i++
	}
	return ts[i:]
}

// RateLimit answers 429 with a Retry-After hint once a client IP exceeds
// rl. A nil limiter disables the check.
func RateLimit(rl *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rl == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := rl.Reserve(clientIP(r))
			if !ok {
				secs := int(math.Ceil(wait.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				writeJSONError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
