package http

import (
	"github.com/gin-gonic/gin"

	"cinecanvas/internal/api/http/handlers"
	"cinecanvas/internal/api/http/middleware"
	"cinecanvas/internal/app"
	"cinecanvas/internal/cinecanvas"
	"cinecanvas/pkg/logger"
)

func NewRouter(cfg *app.Config, codec *cinecanvas.Codec, log logger.Logger) *gin.Engine {
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	setupMiddleware(router, cfg, log)

	healthHandler := handlers.NewHealthHandler(log)
	convertHandler := handlers.NewConvertHandler(codec, log)

	setupRoutes(router, cfg, healthHandler, convertHandler)

	return router
}

func setupMiddleware(router *gin.Engine, cfg *app.Config, log logger.Logger) {
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(log))
	router.Use(middleware.SecureCORS(cfg, log))
	router.Use(middleware.SecureErrorHandler(log))

	if cfg.Security.RateLimit > 0 {
		router.Use(middleware.RateLimit(cfg.Security.RateLimit))
	}

	if cfg.Security.EnableAuth {
		router.Use(middleware.Auth(cfg.Security.APIKey))
	}
}

func setupRoutes(
	router *gin.Engine,
	cfg *app.Config,
	healthHandler *handlers.HealthHandler,
	convertHandler *handlers.ConvertHandler,
) {
	router.GET("/health", healthHandler.Health)
	router.GET("/health/detailed", healthHandler.HealthDetailed)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)

	v1 := router.Group("/api/v1")
	v1.POST("/convert/cinecanvas-to-ass", convertHandler.CineCanvasToASS)
	v1.POST("/convert/ass-to-cinecanvas", convertHandler.ASSToCineCanvas)

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":        "cinecanvas",
			"description": "Bidirectional CineCanvas XML / ASS subtitle codec",
			"endpoints": gin.H{
				"health": gin.H{
					"GET /health":          "Basic health check",
					"GET /health/detailed": "Detailed health information",
					"GET /ready":           "Readiness probe",
					"GET /live":            "Liveness probe",
				},
				"convert": gin.H{
					"POST /api/v1/convert/cinecanvas-to-ass": "Parse CineCanvas XML into an ASS document",
					"POST /api/v1/convert/ass-to-cinecanvas": "Render an ASS document as CineCanvas XML",
				},
			},
		})
	})
}
