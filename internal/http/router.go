package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/resto-analytics/backend/internal/config"
	"github.com/resto-analytics/backend/internal/db"
	"github.com/resto-analytics/backend/internal/http/handlers"
	"github.com/resto-analytics/backend/internal/http/middleware"
	"github.com/resto-analytics/backend/internal/restohost"

	_ "github.com/resto-analytics/backend/docs"
)

func Router(cfg config.Config, store *db.Store, remote *restohost.Client, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     store,
		Remote:    remote,
		Validator: validator.New(),
		Logger:    logger,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/restaurants", h.RestaurantsList)
		api.GET("/restaurants/stats", h.RestaurantStats)
		api.GET("/restaurants/:id", h.RestaurantGet)

		api.GET("/calls", h.CallsList)
		api.GET("/calls/stats", h.CallStatsProxy)
		api.GET("/calls/:id", h.CallGet)

		api.GET("/orders", h.OrdersList)
		api.GET("/orders/stats", h.OrderStatsProxy)
		api.GET("/orders/:id", h.OrderGet)

		api.GET("/metrics", h.Metrics)

		api.GET("/reservations", h.ReservationsList)
		api.GET("/reservations/stats", h.ReservationStatsProxy)
		api.GET("/menu", h.MenuList)

		api.GET("/remote/calls", h.RemoteCallsList)
		api.GET("/remote/orders", h.RemoteOrdersList)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/restaurants", h.RestaurantCreate)
		admin.PUT("/restaurants/:id", h.RestaurantUpdate)
		admin.DELETE("/restaurants/:id", h.RestaurantDelete)

		admin.POST("/calls", h.CallCreate)
		admin.PUT("/calls/:id", h.CallUpdate)
		admin.DELETE("/calls/:id", h.CallDelete)

		admin.POST("/orders", h.OrderCreate)
		admin.PUT("/orders/:id", h.OrderUpdate)
		admin.DELETE("/orders/:id", h.OrderDelete)

		admin.POST("/ingest/restohost", h.IngestRestohost)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
