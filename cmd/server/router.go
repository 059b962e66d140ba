package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/maxviazov/dashboard-service/internal/config"
	"github.com/maxviazov/dashboard-service/internal/handler"
	"github.com/maxviazov/dashboard-service/internal/service"
)

// newHTTPHandler assembles the gin engine with its middleware chain and wraps it in CORS.
func newHTTPHandler(cfg *config.Config, logger zerolog.Logger, pinger handler.Pinger, svc service.DashboardService) http.Handler {
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestID(), handler.AccessLog(logger), handler.Metrics())
	handler.Register(r, pinger, svc)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", handler.RequestIDHeader},
		ExposedHeaders: []string{handler.RequestIDHeader},
		MaxAge:         600,
	})
	return c.Handler(r)
}
