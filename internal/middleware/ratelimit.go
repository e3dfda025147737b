package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/pkg/ratelimit"
	"github.com/textora/core/internal/pkg/response"
)

// RateLimitByIP limits requests per client IP. Limiter errors fail open so
// a Redis outage does not take the API down with it.
func RateLimitByIP(l ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		ok, retryAfter, err := l.Allow(c.Request.Context(), ip)
		if err != nil {
			c.Next()
			return
		}
		if !ok {
			response.TooManyRequests(c, retryAfter)
			return
		}
		c.Next()
	}
}
