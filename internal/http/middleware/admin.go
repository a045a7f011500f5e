package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminKey guards mutating endpoints behind the X-Admin-Key header.
// An empty required key disables the check for local development.
func AdminKey(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if required == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-Admin-Key") != required {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
			return
		}
		c.Next()
	}
}
