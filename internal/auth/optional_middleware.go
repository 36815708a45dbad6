package auth

import "github.com/gin-gonic/gin"

// OptionalMiddleware sets the userID if the request authenticates, but does
// not fail when it does not.
func OptionalMiddleware(p Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := p.Authenticate(c.Request); err == nil {
			c.Set(ContextKey, id.UserID)
		}
		c.Next()
	}
}
