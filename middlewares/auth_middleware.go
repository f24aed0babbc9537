package middlewares

import (
	"net/http"
	"strings"

	"github.com/abhishekkumar914/inventory-management/utils"

	"github.com/gin-gonic/gin"
)

func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.VerifyToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		if v, ok := claims["admin_id"].(float64); ok {
			c.Set("admin_id", uint(v))
		}
		c.Set("username", claims["username"])
		c.Next()
	}
}
