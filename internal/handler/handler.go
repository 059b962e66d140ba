package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maxviazov/dashboard-service/internal/service"
)

// Register mounts all public routes on the given engine.
// Middleware is installed by the caller so tests can mount bare routes.
func Register(r *gin.Engine, repo Pinger, dashboardSvc service.DashboardService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	health := r.Group(HealthPrefix)
	{
		health.GET("/live", h.Liveness)
		health.GET("/ready", h.Readiness)
	}

	NewDashboardHandler(dashboardSvc).Register(r.Group(DashboardPrefix))
}
