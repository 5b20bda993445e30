package controllers

import (
	"context"
	"net/http"

	"PalmCare/middlewares"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports whether an optional dependency is reachable.
type HealthCheck func(ctx context.Context) error

// rootHandler handles requests to the root path
func rootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to PalmCare Connect!")
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		report := gin.H{"status": "ok"}
		for name, check := range checks {
			if err := check(c.Request.Context()); err != nil {
				middlewares.Logger(c).Warn().Err(err).Str("check", name).Msg("Health check failed")
				report[name] = "unavailable"
				report["status"] = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			report[name] = "ok"
		}
		c.JSON(status, report)
	}
}

// SetupRootRoute registers the welcome page and the health probe.
func SetupRootRoute(router *gin.Engine, checks map[string]HealthCheck) {
	router.GET("/", rootHandler)
	router.GET("/healthz", healthHandler(checks))
}
