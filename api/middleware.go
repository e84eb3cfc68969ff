package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"api_dealership/internal/auth"
)

const identityKey = "identity"

// RequestID tags every request with an X-Request-Id header for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// RequireAuth resolves HTTP Basic credentials through the injected verifier
// and stores the resulting identity on the context. Requests without valid
// credentials are rejected with 401.
func RequireAuth(verifier auth.Verifier, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="dealership"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		ident, err := verifier.Verify(username, password)
		if err != nil {
			logger.Warn("credential check failed", zap.String("username", username))
			c.Header("WWW-Authenticate", `Basic realm="dealership"`)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.Set(identityKey, ident)
		c.Next()
	}
}

// RequireManager rejects callers whose verified identity is not a manager.
// It must run after RequireAuth.
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok || ident.Role != auth.RoleManager {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "manager access required"})
			return
		}
		c.Next()
	}
}

func identityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	ident, ok := v.(auth.Identity)
	return ident, ok
}
