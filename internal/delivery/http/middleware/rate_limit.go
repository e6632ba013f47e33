package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/cache"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/security"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Counter key prefix (default: "rl:ip:")
	KeyPrefix string
	// Whether to fail closed (reject) when the counter store is unavailable
	FailClosed bool
}

func clientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ContactRateLimitConfig limits public message submissions per IP.
func ContactRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false,
		KeyFunc:    clientIP,
	}
}

// LoginRateLimitConfig returns strict config specifically for login endpoint
func LoginRateLimitConfig(limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		FailClosed: true,
		KeyFunc:    clientIP,
	}
}

// RateLimitMiddleware counts requests per key in store and rejects the ones
// over the limit with 429.
func RateLimitMiddleware(store cache.Cache, config RateLimitConfig, secLog *security.SecurityLogger) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIP
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "rl:ip:"
	}

	return func(c *gin.Context) {
		if store == nil || config.Limit <= 0 {
			c.Next()
			return
		}

		count, ttl, err := store.Incr(c.Request.Context(), config.KeyPrefix+config.KeyFunc(c), config.Window)
		if err != nil {
			logger.Log.Warn("rate limit store unavailable", "backend", store.Backend(), "error", err)
			if config.FailClosed {
				response.AbortWithError(c, apperror.Unavailable("Service temporarily unavailable. Please try again.", err))
				return
			}
			c.Next()
			return
		}

		if ttl <= 0 {
			ttl = config.Window
		}
		resetAt := time.Now().Add(ttl)
		remaining := config.Limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.UTC().Format(time.RFC3339))

		if int(count) > config.Limit {
			retryAfter := int(ttl.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			secLog.LogRateLimitTriggered(c.Request.Context(), c.ClientIP(), c.Request.UserAgent(),
				c.GetString(string(domain.KeyRequestID)), c.FullPath())
			response.Error(c, http.StatusTooManyRequests, apperror.KindTooManyRequests,
				"Rate limit exceeded. Please try again later.", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
