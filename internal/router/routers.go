package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deelaka-ransilu/bridal-shop-backend/config"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/handler"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/middleware"
	"github.com/deelaka-ransilu/bridal-shop-backend/internal/model"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Category    *handler.CategoryHandler
	Dress       *handler.DressHandler
	Measurement *handler.MeasurementHandler
	Upload      *handler.UploadHandler
	Health      *handler.HealthHandler
}

type Router struct {
	h      Handlers
	jwtMw  *middleware.JWTMiddleware
	Config *config.Config
}

func NewRouter(handlers Handlers, jwtMw *middleware.JWTMiddleware, cfg *config.Config) *Router {
	return &Router{
		h:      handlers,
		jwtMw:  jwtMw,
		Config: cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORS(r.Config.App.FrontendURL))
	router.Use(middleware.ContextMiddleware(r.Config.App.Timeout))

	router.GET("/health", r.h.Health.BasicHealth)
	router.GET("/health/detailed", r.h.Health.HealthCheck)

	api := router.Group(r.Config.App.BasePath)
	api.Use(middleware.RateLimit(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second))
	{
		r.authRoutes(api)
		r.userRoutes(api)
		r.catalogRoutes(api)
		r.customerRoutes(api)
		r.uploadRoutes(api)
	}

	return router
}

func (r *Router) adminOnly() []gin.HandlerFunc {
	return []gin.HandlerFunc{r.jwtMw.RequireAuth(), r.jwtMw.RequireRole(model.RoleAdmin)}
}
