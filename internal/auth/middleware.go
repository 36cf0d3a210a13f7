package auth

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireBearerMiddleware guards the API and swagger surface. When
// LOANSIM_API_TOKEN is set the presented token must match it; otherwise any
// bearer token is accepted, which suits deployments behind a gateway that
// already validated the credential.
func RequireBearerMiddleware() gin.HandlerFunc {
	disabled := strings.EqualFold(os.Getenv("LOANSIM_AUTH_DISABLED"), "true") || os.Getenv("LOANSIM_AUTH_DISABLED") == "1"
	token := strings.TrimSpace(os.Getenv("LOANSIM_API_TOKEN"))

	return func(c *gin.Context) {
		if disabled {
			c.Next()
			return
		}
		p := c.Request.URL.Path
		// Keep infra endpoints open.
		if p == "/healthz" || p == "/readyz" {
			c.Next()
			return
		}
		if strings.HasPrefix(p, "/api/") || strings.HasPrefix(p, "/swagger") {
			presented, ok := bearerToken(c)
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
				return
			}
			if token != "" && subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		value := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		return value, value != ""
	}
	// Browsers cannot set headers on websocket dials; accept a query token.
	if value := strings.TrimSpace(c.Query("token")); value != "" {
		return value, true
	}
	return "", false
}
