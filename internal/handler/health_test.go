package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHealth_Probes(t *testing.T) {
	up := newRouter(stubPinger{}, &stubDashboardService{})
	down := newRouter(stubPinger{err: errors.New("storage unavailable")}, &stubDashboardService{})

	for _, path := range []string{"/live", "/api/health/live"} {
		w := get(down, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		require.JSONEq(t, `{"status":"alive"}`, w.Body.String())
	}

	for _, path := range []string{"/ready", "/api/health/ready"} {
		w := get(up, path)
		require.Equal(t, http.StatusOK, w.Code, path)
		require.JSONEq(t, `{"status":"ready"}`, w.Body.String())

		w = get(down, path)
		require.Equal(t, http.StatusServiceUnavailable, w.Code, path)
		require.JSONEq(t, `{"status":"unavailable","error":"storage unavailable"}`, w.Body.String())
	}
}
