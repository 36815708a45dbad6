package auth

import (
	"net/http"

	"hangout/backend/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VerifiedMiddleware requires the authenticated user to have verified their
// phone number. It must be used AFTER Middleware.
func VerifiedMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).Select("id", "is_verified").First(&user, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authenticated user not found"})
			return
		}

		if !user.IsVerified {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Phone verification required"})
			return
		}

		c.Next()
	}
}
