package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"planet-designer/internal/shared/config"
	"planet-designer/internal/shared/response"
)

func newTestRateLimiter(t *testing.T, cfg config.RateLimitConfig, interval time.Duration) *RateLimiter {
	t.Helper()
	rl := newRateLimiter(cfg, interval)
	t.Cleanup(rl.Close)
	return rl
}

func TestRateLimiterRejectsBurst(t *testing.T) {
	rl := newTestRateLimiter(t, config.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2, Enabled: true}, time.Hour)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last *httptest.ResponseRecorder
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/presets", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		last = httptest.NewRecorder()
		h.ServeHTTP(last, req)
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "1", last.Header().Get("Retry-After"))

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body.Error)
	assert.Equal(t, http.StatusTooManyRequests, body.Code)
}

func TestRateLimiterDisabledPassesThrough(t *testing.T) {
	rl := newTestRateLimiter(t, config.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1}, time.Hour)
	h := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/presets", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Empty(t, rl.clients)
}

func TestLimiterForSharesOneBucketPerClient(t *testing.T) {
	rl := newTestRateLimiter(t, config.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 5, Enabled: true}, time.Hour)

	const workers = 32
	got := make([]*rate.Limiter, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			got[i] = rl.limiterFor("203.0.113.9")
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
	assert.Len(t, rl.clients, 1)
}

func TestDropIdleForgetsRefilledClients(t *testing.T) {
	rl := newTestRateLimiter(t, config.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2, Enabled: true}, time.Hour)

	rl.limiterFor("10.0.0.1")
	rl.limiterFor("10.0.0.2").Allow()

	assert.Equal(t, 1, rl.dropIdle(time.Now()))
	assert.NotContains(t, rl.clients, "10.0.0.1")
	assert.Contains(t, rl.clients, "10.0.0.2")
}

func TestCloseStopsSweeper(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1, Enabled: true}, time.Millisecond)
	rl.limiterFor("10.0.0.1")

	stopped := make(chan struct{})
	go func() {
		rl.Close()
		rl.Close()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not exit after Close")
	}

	select {
	case <-rl.done:
	default:
		t.Fatal("done channel still open")
	}
}

func TestCloseOnDisabledLimiterReturns(t *testing.T) {
	rl := newRateLimiter(config.RateLimitConfig{}, time.Millisecond)
	rl.Close()
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	assert.Equal(t, "192.168.1.1", clientIP(req, false))
	assert.Equal(t, "203.0.113.7", clientIP(req, true))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(req, true))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", clientIP(req, false))
}
