package middleware

import (
	"net/http"
	"strconv"

	"github.com/varunmitra/altgrammarly/internal/metrics"
)

// knownRoutes keeps the path label bounded; anything else is "other".
var knownRoutes = map[string]bool{
	"/api/transform":  true,
	"/api/operations": true,
	"/api/models":     true,
	"/api/health":     true,
	"/metrics":        true,
}

func routeLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// Metrics records request count by method, route, and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		metrics.RequestsTotal.WithLabelValues(r.Method, routeLabel(r.URL.Path), strconv.Itoa(sw.status)).Inc()
	})
}
