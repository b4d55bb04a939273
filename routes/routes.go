package routes

import (
	"log/slog"
	"net/http"
	"time"

	v1 "github.com/callsoso/callsoso/api/v1"
	"github.com/callsoso/callsoso/metrics"
	"github.com/callsoso/callsoso/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine: the global middleware chain, the
// Prometheus endpoint and the v1 API
func SetupRouter(deps v1.Dependencies, logger *slog.Logger) *gin.Engine {
	cfg := deps.Config
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger),
		gin.Recovery(),
		middleware.Security(cfg),
	)

	// CORS configuration
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CSRFTrustedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CSRFTrustedOrigins
	} else {
		corsConfig.AllowOriginFunc = func(string) bool { return cfg.Debug }
	}
	router.Use(cors.New(corsConfig))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Not found",
		})
	})

	v1.RegisterRoutes(router.Group("/api/v1"), deps)
	return router
}
