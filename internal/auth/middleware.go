package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKey is where the authenticated user id is stored on the gin context.
const ContextKey = "userID"

// Middleware rejects requests that p cannot authenticate.
func Middleware(p Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := p.Authenticate(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(ContextKey, id.UserID)
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(ContextKey)
}
