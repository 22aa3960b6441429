package middleware

import (
	"net/http"
	"strings"
	"time"

	"case-management-backend/config"
	"case-management-backend/models"

	"github.com/gin-gonic/gin"
)

// RequireAuth resolves the bearer token to a staff user and stores it on
// the context. Authorization scope is derived from the user downstream;
// handlers never read ambient session state directly.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		var session models.Session
		err := config.DB.Preload("User").Where("token = ?", token).First(&session).Error
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if session.ExpiresAt != nil && session.ExpiresAt.Before(time.Now()) {
			config.DB.Delete(&session)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}

		c.Set("currentUser", session.User)
		c.Set("sessionID", session.ID)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get("currentUser")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}
		user, _ := v.(models.User)
		if user.Role != "ADMIN" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}
