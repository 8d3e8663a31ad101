package middleware

import (
	"net/http"

	"backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// RequireRoles is role-based access control over the closed role set.
// Assumes RequireAuth ran earlier and stored the caller's role.
//
// Example:
//
//	admin := api.Group("/admin", RequireAuth(secret), RequireRoles(domain.RoleAdmin))
func RequireRoles(allowedRoles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role := domain.Role(c.GetString(ctxUserRole))
		if !role.Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "unauthorized: role missing from context",
			})
			return
		}
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "forbidden: role not allowed",
			})
			return
		}
		c.Next()
	}
}
