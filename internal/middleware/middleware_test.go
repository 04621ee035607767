package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCORS(t *testing.T) {
	reached := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusAccepted)
	}))

	tests := []struct {
		method      string
		wantCode    int
		wantReached bool
	}{
		{http.MethodPost, http.StatusAccepted, true},
		{http.MethodGet, http.StatusAccepted, true},
		{http.MethodOptions, http.StatusNoContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			reached = false
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, "/api/transform", nil))

			if w.Code != tt.wantCode {
				t.Errorf("status: got %d, want %d", w.Code, tt.wantCode)
			}
			if reached != tt.wantReached {
				t.Errorf("inner reached: got %v, want %v", reached, tt.wantReached)
			}
			for header, want := range map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
				"Access-Control-Allow-Headers": "Content-Type, X-API-Key",
			} {
				if got := w.Header().Get(header); got != want {
					t.Errorf("%s: got %q, want %q", header, got, want)
				}
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	const incoming = "6f1c2f0e-8a55-4a4e-9d3b-3c1f0b2a9e11"

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"generated when absent", "", false},
		{"incoming UUID kept", incoming, true},
		{"malformed ID replaced", "<script>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("X-Request-ID", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			got := w.Header().Get("X-Request-ID")
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("X-Request-ID %q is not a UUID", got)
			}
			if tt.keep && got != tt.header {
				t.Errorf("X-Request-ID: got %q, want %q", got, tt.header)
			}
			if !tt.keep && got == tt.header {
				t.Errorf("X-Request-ID %q was not regenerated", got)
			}
			if ctxID != got {
				t.Errorf("context ID %q != header ID %q", ctxID, got)
			}
		})
	}
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("got %q, want empty", id)
	}
}

func TestLogging(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusConflict, "WARN"},
		{http.StatusBadGateway, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			prev := slog.Default()
			slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
			t.Cleanup(func() { slog.SetDefault(prev) })

			handler := RequestID(Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("body"))
			})))
			req := httptest.NewRequest(http.MethodPost, "/api/transform", nil)
			req.RemoteAddr = "10.1.2.3:4444"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			var rec map[string]any
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("decode log record %q: %v", buf.String(), err)
			}
			if rec["level"] != tt.level {
				t.Errorf("level: got %v, want %s", rec["level"], tt.level)
			}
			if rec["status"] != float64(tt.status) {
				t.Errorf("status: got %v, want %d", rec["status"], tt.status)
			}
			if rec["bytes"] != float64(4) {
				t.Errorf("bytes: got %v, want 4", rec["bytes"])
			}
			if rec["client"] != "10.1.2.3" {
				t.Errorf("client: got %v", rec["client"])
			}
			if rec["request_id"] != w.Header().Get("X-Request-ID") {
				t.Errorf("request_id: got %v, want %q", rec["request_id"], w.Header().Get("X-Request-ID"))
			}
		})
	}
}

func TestStatusWriterCapturesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	sw.WriteHeader(http.StatusNotFound)

	if sw.status != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", sw.status, http.StatusNotFound)
	}
}

func TestStatusWriterCountsBytes(t *testing.T) {
	w := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	sw.Write([]byte("hello"))
	sw.Write([]byte(" world"))

	if sw.bytes != 11 {
		t.Errorf("bytes: got %d, want 11", sw.bytes)
	}
}

func TestRouteLabel(t *testing.T) {
	tests := map[string]string{
		"/api/transform": "/api/transform",
		"/metrics":       "/metrics",
		"/api/polish":    "other",
		"/":              "other",
	}
	for path, want := range tests {
		if got := routeLabel(path); got != want {
			t.Errorf("routeLabel(%q): got %q, want %q", path, got, want)
		}
	}
}

func TestMaxBytesMiddleware(t *testing.T) {
	t.Run("allows small body", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		handler := MaxBytes(1024)(inner)
		body := strings.NewReader("small body")
		req := httptest.NewRequest(http.MethodPost, "/", body)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		handler := MaxBytes(10)(inner)
		body := strings.NewReader(strings.Repeat("x", 100))
		req := httptest.NewRequest(http.MethodPost, "/", body)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status: got %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
		}
	})
}

func TestChainTimeout(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	handler := Chain(slow, nil, "", 20*time.Millisecond)
	req := httptest.NewRequest(http.MethodPost, "/api/transform", strings.NewReader("{}"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header not set")
	}
}
