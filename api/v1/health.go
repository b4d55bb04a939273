package v1

import (
	"net/http"

	"github.com/callsoso/callsoso/database"
	"github.com/gin-gonic/gin"
)

// Version is set at build time
var Version = "dev"

// HealthCheck handles the health check endpoint
func HealthCheck(c *gin.Context) {
	status, code := "ok", http.StatusOK
	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":  status,
		"service": "callsoso-api",
		"version": Version,
	})
}
