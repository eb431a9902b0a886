package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/internal/constants"
	ctxutil "github.com/deelaka-ransilu/bridal-shop-backend/pkg/context"
	"github.com/deelaka-ransilu/bridal-shop-backend/pkg/logger"
)

// RateLimiter is a per-key sliding window kept in memory
type RateLimiter struct {
	hits       map[string][]time.Time
	maxRequest int
	window     time.Duration
	now        func() time.Time
	mu         sync.Mutex
}

func NewRateLimiter(maxRequest int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		hits:       make(map[string][]time.Time),
		maxRequest: maxRequest,
		window:     window,
		now:        time.Now,
	}
}

// Allow records a hit for key and reports whether it fits in the window,
// with the number of hits still available.
func (rl *RateLimiter) Allow(key string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.cleanup(now)

	hits := rl.hits[key]
	if len(hits) >= rl.maxRequest {
		return false, 0
	}

	rl.hits[key] = append(hits, now)
	return true, rl.maxRequest - len(hits) - 1
}

func (rl *RateLimiter) cleanup(now time.Time) {
	for key, hits := range rl.hits {
		valid := hits[:0]
		for _, t := range hits {
			if now.Sub(t) <= rl.window {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			rl.hits[key] = valid
		} else {
			delete(rl.hits, key)
		}
	}
}

// RateLimit limits requests per client IP. Non-positive limits disable it.
func RateLimit(maxRequest int, window time.Duration) gin.HandlerFunc {
	if maxRequest <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	limiter := NewRateLimiter(maxRequest, window)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, remaining := limiter.Allow(ip)
		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequest))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, "middleware", "RateLimit")
			logger.WarnWithContext(ctx, "Rate limit exceeded").
				String("method", c.Request.Method).
				String("path", c.Request.URL.Path).
				Int("max_requests", maxRequest).
				Duration(window).
				Log()

			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				constants.BuildErrorResponse("Rate limit exceeded", nil))
			return
		}

		c.Next()
	}
}
