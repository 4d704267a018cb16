package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotelops/internal/pkg/response"
)

const (
	RoleAdmin        = "admin"
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleHousekeeping = "housekeeping"
	RoleGuest        = "guest"
)

// FrontDesk is every role allowed to run the reservation desk.
var FrontDesk = []string{RoleAdmin, RoleManager, RoleReceptionist}

// RequireRole ensures that the authenticated user has one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if !allowed[role] {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// AdminOnly middleware requires admin role
func AdminOnly() gin.HandlerFunc {
	return RequireRole(RoleAdmin)
}
