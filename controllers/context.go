package controllers

import (
	"case-management-backend/models"
	"case-management-backend/services"

	"github.com/gin-gonic/gin"
)

func currentUser(c *gin.Context) models.User {
	if v, ok := c.Get("currentUser"); ok {
		if user, ok2 := v.(models.User); ok2 {
			return user
		}
	}
	return models.User{}
}

// currentScope turns the authenticated user into the explicit
// authorization scope the services accept.
func currentScope(c *gin.Context) services.Scope {
	user := currentUser(c)
	return services.Scope{UserID: user.ID, Admin: user.Role == "ADMIN"}
}
