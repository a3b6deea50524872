package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"planet-designer/internal/shared/config"
	"planet-designer/internal/shared/errors"
	"planet-designer/internal/shared/response"
)

const defaultSweepInterval = time.Minute

// RateLimiter throttles API calls per client address. Evaluate and validate requests
// are cheap but unauthenticated, so every client gets its own token bucket.
type RateLimiter struct {
	config   config.RateLimitConfig
	interval time.Duration
	clients  map[string]*rate.Limiter
	mu       sync.RWMutex

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(cfg config.RateLimitConfig) *RateLimiter {
	return newRateLimiter(cfg, defaultSweepInterval)
}

func newRateLimiter(cfg config.RateLimitConfig, interval time.Duration) *RateLimiter {
	rl := &RateLimiter{
		config:   cfg,
		interval: interval,
		clients:  make(map[string]*rate.Limiter),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	if cfg.Enabled {
		go rl.sweepIdleClients()
	} else {
		close(rl.done)
	}

	return rl
}

// Close stops the idle-client sweeper and waits for it to exit. Safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
	<-rl.done
}

func (rl *RateLimiter) limiterFor(client string) *rate.Limiter {
	rl.mu.RLock()
	limiter, ok := rl.clients[client]
	rl.mu.RUnlock()
	if ok {
		return limiter
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	// another request from the same client may have won the race
	if limiter, ok := rl.clients[client]; ok {
		return limiter
	}
	limiter = rate.NewLimiter(rate.Limit(rl.config.RequestsPerSecond), rl.config.BurstSize)
	rl.clients[client] = limiter
	return limiter
}

func (rl *RateLimiter) sweepIdleClients() {
	defer close(rl.done)

	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.dropIdle(now)
		}
	}
}

// dropIdle forgets clients whose bucket has refilled; they start over with a full burst.
func (rl *RateLimiter) dropIdle(now time.Time) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	dropped := 0
	for client, limiter := range rl.clients {
		if limiter.TokensAt(now) >= float64(rl.config.BurstSize) {
			delete(rl.clients, client)
			dropped++
		}
	}
	if dropped > 0 {
		slog.Debug("Dropped idle rate limit clients", "component", "rate_limit", "dropped", dropped, "remaining", len(rl.clients))
	}
	return dropped
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.config.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		client := clientIP(r, rl.config.TrustProxy)
		logger := slog.With(
			"middleware", "rate_limit",
			"client_ip", client,
			"method", r.Method,
			"path", r.URL.Path,
		)

		if !rl.limiterFor(client).Allow() {
			w.Header().Set("Retry-After", "1")
			response.Error(w, r, logger, errors.RateLimited("rate limit exceeded"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
