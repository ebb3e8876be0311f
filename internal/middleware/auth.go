package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtpkg "github.com/bookhaven/backend/pkg/jwt"
)

const (
	// ContextClaims is the gin context key holding the verified token claims
	ContextClaims = "claims"
)

// Auth verifies the bearer token and stores the claims on the context
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"code":    http.StatusUnauthorized,
				"message": "invalid token",
			})
			return
		}

		claims, err := jwtpkg.ValidateToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"code":    http.StatusUnauthorized,
				"message": "invalid token",
			})
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// RoleRequired rejects authenticated callers whose role is not allowed.
// Must be mounted after Auth.
func RoleRequired(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"code":    http.StatusUnauthorized,
				"message": "invalid token",
			})
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"status":  "error",
			"code":    http.StatusForbidden,
			"message": "insufficient permissions",
		})
	}
}

// GetClaims returns the verified claims from the context, or nil
func GetClaims(c *gin.Context) *jwtpkg.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if claims, ok := v.(*jwtpkg.Claims); ok {
			return claims
		}
	}
	return nil
}
