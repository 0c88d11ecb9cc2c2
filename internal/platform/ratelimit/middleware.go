package ratelimit

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware returns a Gin middleware that rejects requests over the limit
// with 429, keyed by client IP. Limiter errors fail open.
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}
		if !ok {
			slog.Warn("signup attempts limited", "remote_addr", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
