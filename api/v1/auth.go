package v1

import (
	"net/http"
	"time"

	"github.com/callsoso/callsoso/dto"
	"github.com/callsoso/callsoso/middleware"
	"github.com/callsoso/callsoso/services"
	"github.com/callsoso/callsoso/utils"
	"github.com/gin-gonic/gin"
)

// sessionMaxAge is the cookie lifetime in seconds
const sessionMaxAge = int(services.TokenTTL / time.Second)

// AuthController handles signup, login, logout and the current user
type AuthController struct {
	authService  *services.AuthService
	users        middleware.UserFinder
	secureCookie bool
}

// NewAuthController creates a new auth controller. secureCookie sets the
// Secure flag on the session cookie.
func NewAuthController(authService *services.AuthService, users middleware.UserFinder, secureCookie bool) *AuthController {
	return &AuthController{
		authService:  authService,
		users:        users,
		secureCookie: secureCookie,
	}
}

// RegisterRoutes registers auth routes
func (a *AuthController) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", a.Signup)
		authGroup.POST("/login", a.Login)
		authGroup.POST("/logout", a.Logout)
		// Use auth middleware here only for the /me endpoint
		authGroup.GET("/me", middleware.AuthMiddleware(a.authService, a.users), a.GetCurrentUser)
	}
}

// Signup handles user registration and logs the new user in
func (a *AuthController) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !bindForm(c, &req) {
		return
	}

	authResponse, err := a.authService.Signup(req)
	if err != nil {
		respondServiceError(c, "Registration failed", err)
		return
	}

	a.setSession(c, authResponse.Token, sessionMaxAge)
	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "User registered successfully",
		"data":    authResponse,
	})
}

// Login handles user authentication
func (a *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindForm(c, &req) {
		return
	}

	authResponse, err := a.authService.Login(req)
	if err != nil {
		respondServiceError(c, "Authentication failed", err)
		return
	}

	// Also return token in response body for clients that prefer Bearer auth
	a.setSession(c, authResponse.Token, sessionMaxAge)
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   authResponse,
	})
}

// GetCurrentUser returns the currently authenticated user's profile
func (a *AuthController) GetCurrentUser(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   user,
	})
}

func (a *AuthController) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		middleware.CookieName, // name
		token,                 // value
		maxAge,                // max age in seconds
		"/",                   // path
		"",                    // domain
		a.secureCookie,        // secure (HTTPS only)
		true,                  // httpOnly (not accessible via JS)
	)
}
