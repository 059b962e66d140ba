package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/dashboard-service/internal/service"
	"github.com/maxviazov/dashboard-service/pkg/response"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Register(r *gin.RouterGroup) {
	r.GET("/stats", h.stats)
	r.GET("/recent-activity", h.recentActivity)
}

func (h *DashboardHandler) stats(c *gin.Context) {
	out, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, out)
}

func (h *DashboardHandler) recentActivity(c *gin.Context) {
	var ferrs []service.FieldError
	offset, ok := intQuery(c, "offset", defaultOffset)
	if !ok {
		ferrs = append(ferrs, service.FieldError{Field: "offset", Message: "must be an integer"})
	}
	limit, ok := intQuery(c, "limit", defaultLimit)
	if !ok {
		ferrs = append(ferrs, service.FieldError{Field: "limit", Message: "must be an integer"})
	}
	if len(ferrs) > 0 {
		response.WriteError(c, service.NewInvalidInputError(ferrs))
		return
	}

	feed, err := h.svc.RecentActivity(c.Request.Context(), service.ActivityQuery{
		Offset: offset,
		Limit:  limit,
		Cursor: c.Query("cursor"),
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, feed)
}

// intQuery reads an optional integer query parameter. Absent or blank means def.
func intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
