package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := RequestIDMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notes", nil))

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/notes", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied", seen)
	assert.Equal(t, "client-supplied", rec.Header().Get(RequestIDHeader))
}

func TestLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestIDMiddleware()(LoggerMiddleware(logger)(http.HandlerFunc(okHandler)))

	req := httptest.NewRequest(http.MethodDelete, "/notes/4", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	assert.Contains(t, out, "method=DELETE")
	assert.Contains(t, out, "path=/notes/4")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "request_id=req-1")
}

func TestMetricsMiddlewareKeepsStatus(t *testing.T) {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware())
	r.HandleFunc("/notes/{id}", okHandler).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/notes/3", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestCORSMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		allowed    string
		origin     string
		wantOrigin string
	}{
		{name: "wildcard echoes origin", allowed: "*", origin: "https://app.example", wantOrigin: "https://app.example"},
		{name: "wildcard without origin", allowed: "*", wantOrigin: "*"},
		{name: "listed origin", allowed: "https://a.example, https://b.example", origin: "https://b.example", wantOrigin: "https://b.example"},
		{name: "unlisted origin", allowed: "https://a.example", origin: "https://evil.example", wantOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORSMiddleware(tt.allowed, "GET,POST", "Content-Type")(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, http.StatusTeapot, rec.Code)
		})
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	called := false
	handler := CORSMiddleware("*", "GET,POST", "Content-Type")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/notes", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET,POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.False(t, called)
}

func TestRateLimiter_PerClient(t *testing.T) {
	limiter := NewRateLimiter(2)
	now := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.2"), "buckets are per client")

	now = now.Add(30 * time.Second)
	assert.True(t, limiter.Allow("10.0.0.1"), "one token refills every 30s")
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(10)
	now := time.Unix(1_700_000_000, 0)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	limiter.Allow("b")
	require.Equal(t, 2, limiter.Len())

	now = now.Add(idleLimiterTTL + time.Second)
	limiter.Allow("c")

	assert.Equal(t, 1, limiter.Len())
}

func TestRateLimitMiddleware(t *testing.T) {
	handler := RateLimitMiddleware(NewRateLimiter(1))(http.HandlerFunc(okHandler))

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/analytics", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusTeapot, send("192.0.2.1:5000").Code)

	rec := send("192.0.2.1:5001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "Too many requests")

	assert.Equal(t, http.StatusTeapot, send("192.0.2.2:5000").Code)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.7:43210"
	assert.Equal(t, "198.51.100.7", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", ClientIP(req))
}
