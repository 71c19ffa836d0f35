// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements an in-memory token-bucket rate limiter with per-key
// buckets and opportunistic eviction of idle entries. It is process-local:
// for horizontally scaled deployments a distributed limiter would be needed
// to enforce a global limit. The limiter is edge-level abuse control, not an
// authorization mechanism.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyFunc selects the identity used to key a rate-limit bucket. It should
// return a stable string for the duration of a request.
type keyFunc func(*gin.Context) string

// KeyByUserOrIP returns a keyFunc that prefers the authenticated identity
// (set by RequireIdentity) and falls back to the client IP. Keys are
// prefixed so the user and IP namespaces cannot collide.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if uid, ok := UserID(c); ok {
			return "user:" + uid
		}
		return "ip:" + c.ClientIP()
	}
}

// bucket pairs a limiter with its last-seen time for idle eviction.
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter implements a per-key token-bucket limiter. Buckets are created
// on demand in a mutex-guarded map; entries idle for longer than the TTL are
// evicted during lookups so memory stays bounded. Safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc
	ttl   time.Duration

	mu      sync.Mutex
	buckets map[string]*bucket
	lookups int
}

// NewRateLimiter constructs a RateLimiter replenishing rps tokens per second
// with the given burst size (values <= 0 are coerced to 1), keyed by keyFn.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		ttl:     10 * time.Minute,
		buckets: make(map[string]*bucket),
	}
}

// get returns the limiter for key, creating it if absent, and runs eviction
// every few thousand lookups. Eviction happens before the requested bucket is
// refreshed so a stale bucket for the same key can still be dropped.
func (rl *RateLimiter) get(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lookups++
	if rl.lookups >= 5000 {
		for k, b := range rl.buckets {
			if now.Sub(b.lastSeen) >= rl.ttl {
				delete(rl.buckets, k)
			}
		}
		rl.lookups = 0
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// Handler returns the Gin middleware enforcing the limit. Requests over the
// limit receive 429 with the standard error envelope.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.get(rl.keyFn(c)).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    "too_many_requests",
				"message": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
