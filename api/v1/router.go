package v1

import (
	"github.com/callsoso/callsoso/admin"
	"github.com/callsoso/callsoso/config"
	"github.com/callsoso/callsoso/middleware"
	"github.com/callsoso/callsoso/repositories"
	"github.com/callsoso/callsoso/services"
	"github.com/gin-gonic/gin"
)

// Dependencies are the services the API handlers call into.
type Dependencies struct {
	Config   *config.Config
	Auth     *services.AuthService
	Listings *services.ListingService
	Matches  *services.MatchService
	Content  *services.ContentService
	Site     *services.SiteService
	Feeds    *services.FeedService
}

// RegisterRoutes registers all v1 API routes
func RegisterRoutes(router *gin.RouterGroup, deps Dependencies) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Sessions are checked against the stored account on every request
	users := repositories.NewUserRepository()

	// Auth endpoints
	authController := NewAuthController(deps.Auth, users, deps.Config.Security.SessionCookieSecure)
	authController.RegisterRoutes(router)

	// Everything else requires a session, and cookie sessions must come
	// from a trusted origin for unsafe methods
	authRouter := router.Group("")
	authRouter.Use(
		middleware.AuthMiddleware(deps.Auth, users),
		middleware.TrustedOrigins(deps.Config.CSRFTrustedOrigins),
	)

	NewSiteController(deps.Site, deps.Content).RegisterRoutes(authRouter)
	NewContentController(deps.Content).RegisterRoutes(authRouter)
	NewDirectoryController(deps.Listings, deps.Matches).RegisterRoutes(authRouter)

	// Admin console - protected by AdminMiddleware
	adminGroup := authRouter.Group("/admin")
	adminGroup.Use(middleware.AdminMiddleware())
	admin.NewDefaultSite(admin.Dependencies{
		Listings: deps.Listings,
		Feeds:    deps.Feeds,
	}).RegisterRoutes(adminGroup)
}
