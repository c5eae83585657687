package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/casacomune/community-api/internal/ratelimit"
	"github.com/casacomune/community-api/pkg/metrics"
)

// SubmissionLimitMiddleware enforces the fixed-window submission quota
// for the contact form. The limiter instance is injected so tests and
// multi-instance deployments can scope their own entry tables.
func SubmissionLimitMiddleware(limiter *ratelimit.FixedWindowLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := ratelimit.ResolveClientID(
			c.GetHeader("X-Forwarded-For"),
			c.Request.RemoteAddr,
		)

		if !limiter.Admit(identity) {
			metrics.ContactSubmissions.WithLabelValues("rate_limited").Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Too many submissions. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
