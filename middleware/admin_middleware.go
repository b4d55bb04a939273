package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminMiddleware restricts the admin console to staff. It reads the
// account AuthMiddleware loaded, so the role is the one currently stored.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			return
		}

		if !user.IsStaff() {
			slog.Warn("admin console denied", "userId", user.ID, "path", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "Staff account required",
			})
			return
		}

		c.Next()
	}
}
