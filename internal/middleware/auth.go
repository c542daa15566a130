package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fiqretemirxd/mycardiacrehab/internal/auth"
	"github.com/fiqretemirxd/mycardiacrehab/pkg/model"
)

// Context keys set by AuthMiddleware for downstream handlers
const (
	ContextUserID   = "user_id"
	ContextUserRole = "user_role"
)

// AuthMiddleware validates the bearer token and stores the caller's identity
// in the request context
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Missing authorization header",
			})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Authorization header must use the Bearer scheme",
			})
			return
		}

		claims, err := auth.ValidateToken(tokenString, jwtSecret)
		if err != nil || claims.TokenType != auth.TokenTypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, string(claims.Role))

		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set. It must
// run after AuthMiddleware.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		callerRole := model.Role(c.GetString(ContextUserRole))
		for _, role := range roles {
			if callerRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":    "FORBIDDEN",
			"message": "Insufficient permissions",
		})
	}
}
