package routes

import (
	"net/http"

	"PalmCare/config"
	"PalmCare/controllers"
	"PalmCare/handlers"
	"PalmCare/middlewares"
	"PalmCare/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(svc *services.Services, cfg *config.AppConfig, log zerolog.Logger, checks map[string]controllers.HealthCheck) http.Handler {
	if cfg.IsDev() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middlewares.RequestID())
	router.Use(middlewares.Recovery(log))
	router.Use(middlewares.RequestLogger(log))
	router.Use(middlewares.CorsMiddleware(middlewares.NewCorsConfig(cfg.CORSOrigins)))
	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	router.Use(middlewares.SessionMiddleware(svc.Sessions))

	api := router.Group("/api")
	controllers.SetupClinicRoutes(api, controllers.NewClinicHandlers(svc))
	controllers.NewSessionController(handlers.NewSessionHandler(svc.Sessions)).RegisterRoutes(api)

	controllers.SetupRootRoute(router, checks)

	router.NoRoute(func(c *gin.Context) {
		middlewares.HttpError(c, "route not found", http.StatusNotFound, middlewares.CodeNotFound)
	})

	return router
}
