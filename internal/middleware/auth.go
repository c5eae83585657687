package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/casacomune/community-api/pkg/logger"
)

// AdminAuthMiddleware validates the static admin API token. The
// comparison is constant-time so token length and prefix never leak
// through response timing.
func AdminAuthMiddleware(validToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if validToken == "" {
			// Admin surface disabled when no token is configured
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			c.Abort()
			return
		}

		token := c.GetHeader("X-Admin-Auth-Token")

		if token == "" || !timingSafeCompare(token, validToken) {
			logger.Warn("Invalid admin token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing authentication token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func timingSafeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
