package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/dashboard-service/internal/handler"
)

func instrumented(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handler.RequestID(), handler.AccessLog(zerolog.New(buf)), handler.Metrics())
	handler.Register(r, stubPinger{}, &stubDashboardService{})
	return r
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r := instrumented(&bytes.Buffer{})

	w := get(r, "/live")
	_, err := uuid.Parse(w.Header().Get(handler.RequestIDHeader))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.Header.Set(handler.RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "req-42", w.Header().Get(handler.RequestIDHeader))
}

func TestAccessLog_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	r := instrumented(&buf)

	w := get(r, "/api/dashboard/recent-activity?limit=x")
	require.Equal(t, http.StatusBadRequest, w.Code)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "http", entry["module"])
	assert.Equal(t, "/api/dashboard/recent-activity", entry["path"])
	assert.Equal(t, "limit=x", entry["query"])
	assert.EqualValues(t, 400, entry["status"])
	assert.Equal(t, "invalid input", entry["error"])
	assert.Equal(t, w.Header().Get(handler.RequestIDHeader), entry["request_id"])
}

func TestMetricsEndpoint_ExposesRequestCounters(t *testing.T) {
	r := instrumented(&bytes.Buffer{})
	get(r, "/api/dashboard/stats")

	w := get(r, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `dashboard_service_http_requests_total{method="GET",route="/api/dashboard/stats",status="200"}`)
}
