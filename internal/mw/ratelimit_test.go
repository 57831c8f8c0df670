package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/orders", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	l := NewRateLimiter(0.001, 3)
	h := l.Handler(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:5000"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:5001"))
}

func TestRateLimiter_PerClient(t *testing.T) {
	l := NewRateLimiter(0.001, 1)
	h := l.Handler(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2:5000"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	now := time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)
	l := NewRateLimiter(1, 1)
	l.now = func() time.Time { return now }

	l.limiter("10.0.0.1")
	now = now.Add(2 * time.Minute)
	l.limiter("10.0.0.2")
	now = now.Add(2 * time.Minute)

	l.cleanup()

	assert.NotContains(t, l.visitors, "10.0.0.1")
	assert.Contains(t, l.visitors, "10.0.0.2")
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.7:41234"
	assert.Equal(t, "192.168.1.7", clientIP(req))

	req.RemoteAddr = "192.168.1.7"
	assert.Equal(t, "192.168.1.7", clientIP(req))
}
