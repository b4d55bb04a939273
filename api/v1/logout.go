package v1

import (
	"log/slog"
	"net/http"

	"github.com/callsoso/callsoso/middleware"
	"github.com/gin-gonic/gin"
)

// Logout expires the session cookie. It needs no valid session, so a
// stale cookie can always be cleared.
func (a *AuthController) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.CookieName); err == nil && token != "" {
		if claims, err := a.authService.ValidateToken(token); err == nil {
			slog.Info("user logged out", "userId", claims.UserID)
		}
	}
	a.setSession(c, "", -1)

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out",
	})
}
