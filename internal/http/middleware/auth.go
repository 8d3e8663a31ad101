package middleware

import (
	"net/http"
	"strings"

	"backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID    = "userId"
	ctxUserEmail = "userEmail"
	ctxUserRole  = "userRole"
)

// RequireAuth verifies the bearer token and stores the caller's identity in
// the gin context for handlers and role checks downstream.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "missing bearer token",
			})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
			})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token claims",
			})
			return
		}

		userID, _ := claims["user_id"].(float64)
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)
		if userID <= 0 || email == "" || !domain.Role(role).Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token claims",
			})
			return
		}

		c.Set(ctxUserID, int64(userID))
		c.Set(ctxUserEmail, email)
		c.Set(ctxUserRole, role)
		c.Next()
	}
}

// GetRequestContext extracts the authenticated caller set by RequireAuth.
func GetRequestContext(c *gin.Context) domain.RequestContext {
	rc := domain.RequestContext{}
	if v, ok := c.Get(ctxUserID); ok {
		if id, ok := v.(int64); ok {
			rc.UserID = id
		}
	}
	rc.Email = c.GetString(ctxUserEmail)
	rc.Role = domain.Role(c.GetString(ctxUserRole))
	return rc
}
