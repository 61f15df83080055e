package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// limiterPool keeps one token bucket per key and drops entries that have been
// idle for 30 minutes. Cleanup stops when ctx is cancelled.
type limiterPool[K comparable] struct {
	mu      sync.Mutex
	entries map[K]*limiterEntry
	rps     float64
	burst   int
}

func newLimiterPool[K comparable](ctx context.Context, rps float64, burst int) *limiterPool[K] {
	p := &limiterPool[K]{
		entries: make(map[K]*limiterEntry),
		rps:     rps,
		burst:   burst,
	}

	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.mu.Lock()
				cutoff := time.Now().Add(-30 * time.Minute)
				for k, e := range p.entries {
					if e.lastAccess.Before(cutoff) {
						delete(p.entries, k)
					}
				}
				p.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return p
}

func (p *limiterPool[K]) allow(key K) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[key]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(p.rps), p.burst)}
		p.entries[key] = e
	}
	e.lastAccess = time.Now()
	return e.limiter.Allow()
}

// RateLimitByIP applies per-IP rate limiting for unauthenticated endpoints
// (e.g. auth routes). Uses chi's RealIP middleware value via r.RemoteAddr.
func RateLimitByIP(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	pool := newLimiterPool[string](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !pool.allow(r.RemoteAddr) {
				http.Error(w, `{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit applies per-tenant rate limiting. Requests without tenant context
// pass through; the Auth and RequireTenant middleware run first, so that only
// happens on routes that opted out of authentication.
func RateLimit(ctx context.Context, requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	pool := newLimiterPool[uuid.UUID](ctx, requestsPerSecond, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID, ok := TenantIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			if !pool.allow(tenantID) {
				http.Error(w, `{"title":"Too Many Requests","status":429,"detail":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
