package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the length of the sliding window
	Window time.Duration
	// Limit is the maximum number of requests allowed in any window
	Limit int
	// KeyPrefix namespaces the counters in the store
	KeyPrefix string
}

// RateLimitResult is the outcome of one counted request
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	// ResetAt is when the oldest counted request leaves the window
	ResetAt time.Time
}

// RateLimitStore records requests in a sliding window. A request is only
// recorded when it is allowed, so rejected requests do not extend a block.
type RateLimitStore interface {
	Take(ctx context.Context, key string, limit int, window time.Duration, now time.Time) (RateLimitResult, error)
}

// RateLimiter enforces a per-client sliding-window limit
type RateLimiter struct {
	store  RateLimitStore
	config RateLimitConfig
	now    func() time.Time
	log    logrus.FieldLogger
}

// NewRateLimiter creates a new rate limiter instance
func NewRateLimiter(store RateLimitStore, config RateLimitConfig) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rate_limit"
	}
	return &RateLimiter{
		store:  store,
		config: config,
		now:    time.Now,
		log:    logrus.WithField("component", "rate_limit"),
	}
}

// NewGlobalRateLimiter creates the limiter applied to every request
func NewGlobalRateLimiter(store RateLimitStore, window time.Duration, limit int) *RateLimiter {
	return NewRateLimiter(store, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:global",
	})
}

// IsAllowed counts a request from clientID.
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, clientID string) (bool, int, time.Time, error) {
	key := fmt.Sprintf("%s:%s", rl.config.KeyPrefix, clientID)
	res, err := rl.store.Take(ctx, key, rl.config.Limit, rl.config.Window, rl.now())
	if err != nil {
		return false, 0, time.Time{}, err
	}
	return res.Allowed, res.Remaining, res.ResetAt, nil
}

// RateLimitMiddleware returns a Gin middleware that enforces rate limiting per client IP
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), clientIP)
		if err != nil {
			// Log error but don't fail the request
			rl.log.WithError(err).WithField("client_ip", clientIP).Warn("rate limit check failed")
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}

		// Set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			retryAfter := int(math.Ceil(resetTime.Sub(rl.now()).Seconds()))
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"message":     fmt.Sprintf("Too many requests from this IP, please try again later. The limit is %d requests per %v.", rl.config.Limit, rl.config.Window),
				"retry_after": retryAfter,
			})
			return
		}

		c.Next()
	}
}
