package middleware

import (
	"net/http"
	"time"
)

const maxBodyBytes = 64 * 1024

// Chain wraps the handler with the full middleware stack.
// Order: CORS → RequestID → Logging → Metrics → RateLimit → APIKey → MaxBytes → Timeout → mux
func Chain(handler http.Handler, rl *RateLimiter, apiKey string, timeout time.Duration) http.Handler {
	h := handler
	if timeout > 0 {
		h = http.TimeoutHandler(h, timeout, `{"error":"request timeout"}`)
	}
	h = MaxBytes(maxBodyBytes)(h)
	h = APIKey(apiKey)(h)
	h = RateLimit(rl)(h)
	h = Metrics(h)
	h = Logging(h)
	h = RequestID(h)
	h = CORS(h)
	return h
}
