// Package ratelimiter limits the frequency of operations per key using a
// fixed window.
package ratelimiter

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Limiter enforces a fixed-window request budget per key. Unlike a blocking
// limiter it never sleeps; callers over budget are told to back off.
type Limiter struct {
	mu       sync.Mutex
	limit    int           // requests allowed per window
	interval time.Duration // window length
	windows  map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

// New creates a Limiter allowing limit requests per interval for each key.
func New(limit int, interval time.Duration) *Limiter {
	return &Limiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow reports whether another request for key fits in the current window.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.interval)}
		return true
	}
	w.count++
	return w.count <= l.limit
}

// Middleware returns a gin middleware keyed by client IP that responds with
// 429 when the caller is over budget. Used on the credential endpoints to
// slow down brute-force attempts.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
