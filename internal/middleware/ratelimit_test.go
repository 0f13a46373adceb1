package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitGeneralBurst(t *testing.T) {
	mw := NewRateLimitMiddleware(300, 1)
	handler := mw.Handler(okHandler())

	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/files", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestRateLimitAuthBucket(t *testing.T) {
	mw := NewRateLimitMiddleware(300, 1)
	handler := mw.Handler(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	// Burst of 1: the second immediate login attempt is limited.
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "60", second.Header().Get("Retry-After"))
}

func TestRateLimitWebSocketExempt(t *testing.T) {
	mw := NewRateLimitMiddleware(1, 1)
	handler := mw.Handler(okHandler())

	// Exhaust the general bucket first.
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/files", nil))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitDefaults(t *testing.T) {
	mw := NewRateLimitMiddleware(0, 0)
	assert.Equal(t, 300, mw.generalRPM)
	assert.Equal(t, 10, mw.authRPM)
}
