package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/spendsmart/spendsmart-api/utils"
)

const userIDKey = "user_id"

// AuthMiddleware guards protected routes. Callers without a valid bearer
// token are turned away before any handler work happens.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id, or 0 when the request is
// not authenticated.
func GetUserID(c *gin.Context) int {
	id, exists := c.Get(userIDKey)
	if !exists {
		return 0
	}
	userID, ok := id.(int)
	if !ok {
		return 0
	}
	return userID
}
