package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NailSitePro/salon-platform/internal/models"
)

// RequireAdmin runs after AuthMiddleware and gates admin-only routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(ContextUserRole)
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_required"})
			return
		}
		c.Next()
	}
}
