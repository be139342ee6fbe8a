package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/somnolab/hypnogram-backend/internal/http/handlers"
	"github.com/somnolab/hypnogram-backend/internal/http/middleware"
	"github.com/somnolab/hypnogram-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	CORSOrigins     []string
	MaxRequestBytes int64
	SimulateHandler *handlers.SimulateHandler
	SessionHandler  *handlers.SessionHandler
	HealthHandler   *handlers.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestContext())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.BodyLimit(cfg.MaxRequestBytes))
	router.Use(otelgin.Middleware("hypnogram"))
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/simulate", cfg.SimulateHandler.Simulate)
		api.POST("/compare", cfg.SimulateHandler.Compare)
		api.GET("/profile/:age", cfg.SimulateHandler.Profile)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", cfg.SessionHandler.Create)
			sessions.GET("/:id", cfg.SessionHandler.Get)
			sessions.PUT("/:id/profiles/:slot", cfg.SessionHandler.UpdateProfile)
			sessions.DELETE("/:id", cfg.SessionHandler.Delete)
		}
	}

	return router
}
