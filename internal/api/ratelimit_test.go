package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_DeniesOverBurst(t *testing.T) {
	logger := discardLogger()

	// One request per minute with a burst of 2.
	limiter := NewRateLimiter(1, time.Minute, 2)

	var hits int
	handler := RateLimitMiddleware(limiter, logger)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.WriteHeader(http.StatusOK)
		}))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:54321"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 2, hits)

	// The 429 body is the simple error envelope, written outside huma.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.JSONEq(t, "1", string(raw["v"]))
	assert.JSONEq(t, "false", string(raw["success"]))
	assert.Contains(t, raw, "error")
}

func TestRateLimitMiddleware_KeysByClientIP(t *testing.T) {
	logger := discardLogger()
	limiter := NewRateLimiter(1, time.Minute, 1)

	handler := RateLimitMiddleware(limiter, logger)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	do := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1111"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:2222"))

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1111"))
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name          string
		xForwardedFor string
		xRealIP       string
		remoteAddr    string
		want          string
	}{
		{
			name:          "forwarded chain takes first hop",
			xForwardedFor: "203.0.113.7, 10.0.0.1",
			remoteAddr:    "10.0.0.1:443",
			want:          "203.0.113.7",
		},
		{
			name:       "real IP when no forwarded header",
			xRealIP:    "203.0.113.9",
			remoteAddr: "10.0.0.1:443",
			want:       "203.0.113.9",
		},
		{
			name:       "remote addr with port stripped",
			remoteAddr: "192.0.2.4:51000",
			want:       "192.0.2.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			assert.Equal(t, tt.want, getClientIP(req))
		})
	}
}
