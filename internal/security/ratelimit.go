package security

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter is a per-client token bucket. Each client gets rate tokens
// per window; the bucket refills in full once the window has elapsed.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	rate    int
	window  time.Duration
}

type bucket struct {
	tokens   int
	refillAt time.Time
}

// NewRateLimiter creates a limiter allowing rate requests per window
// per client. A background goroutine evicts idle buckets.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		rate:    rate,
		window:  window,
	}
	go rl.evictIdle()
	return rl
}

// Allow reports whether a request from the given client may proceed
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[client]
	if !ok || now.After(b.refillAt) {
		b = &bucket{tokens: rl.rate, refillAt: now.Add(rl.window)}
		rl.buckets[client] = b
	}
	if b.tokens == 0 {
		return false
	}
	b.tokens--
	return true
}

// evictIdle drops buckets whose window passed long ago so the map does
// not grow without bound
func (rl *RateLimiter) evictIdle() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		cutoff := time.Now().Add(-rl.window)
		for client, b := range rl.buckets {
			if b.refillAt.Before(cutoff) {
				delete(rl.buckets, client)
			}
		}
		rl.mu.Unlock()
	}
}

// GetClientIP extracts the client IP from the request, preferring the
// proxy headers set by a reverse proxy in front of the server
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	return r.RemoteAddr
}
