package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CookieName is the cookie carrying the session token.
const CookieName = "access_token"

// TokenValidator checks a session token and returns its claims
type TokenValidator interface {
	ValidateToken(token string) (*dto.TokenClaims, error)
}

// UserFinder loads the account a session belongs to
type UserFinder interface {
	FindByID(id uint) (models.User, error)
}

// AuthMiddleware authenticates requests using the session cookie or an
// Authorization: Bearer header. The account is reloaded on every request,
// so deleted users lose their session and role changes apply at once.
// The stored user, userId, username and role are set in the context.
func AuthMiddleware(validator TokenValidator, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Authentication required",
			})
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Invalid or expired token",
			})
			return
		}

		user, err := users.FindByID(claims.UserID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": "Session is no longer valid",
			})
			return
		}
		if err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"status":  "error",
				"message": "Failed to load session user",
			})
			return
		}

		c.Set("user", user)
		c.Set("userId", user.ID)
		c.Set("username", user.Username)
		c.Set("role", string(user.Role))
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}

// UserID returns the authenticated user's ID set by AuthMiddleware
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("userId")
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}

// CurrentUser returns the account loaded by AuthMiddleware
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// IsStaff reports whether the authenticated user is an admin
func IsStaff(c *gin.Context) bool {
	user, ok := CurrentUser(c)
	return ok && user.IsStaff()
}
