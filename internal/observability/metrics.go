// Package observability holds the Prometheus collectors shared by the pager and the HTTP layer.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Pager strategies used as the "strategy" label.
const (
	StrategyFirstPage  = "first_page"
	StrategyKeyset     = "keyset"
	StrategyCursor     = "cursor"
	StrategyOffsetScan = "offset_scan"
)

var (
	pagerQueryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dashboard_service",
		Subsystem: "pager",
		Name:      "query_duration_seconds",
		Help:      "Time spent serving one activity page, including boundary resolution.",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"strategy"})

	boundaryMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "dashboard_service",
		Subsystem: "pager",
		Name:      "boundary_miss_total",
		Help:      "Pages requested past the end of the activity log.",
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "dashboard_service",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, labeled by route template, method and status.",
	}, []string{"route", "method", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "dashboard_service",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route template.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(pagerQueryDuration, boundaryMisses, httpRequests, httpDuration)
}

// ObservePage records how long a page took under the given strategy.
func ObservePage(strategy string, d time.Duration) {
	pagerQueryDuration.WithLabelValues(strategy).Observe(d.Seconds())
}

// RecordBoundaryMiss counts a request whose offset lay beyond the last row.
func RecordBoundaryMiss() {
	boundaryMisses.Inc()
}

// ObserveRequest records one finished HTTP request.
func ObserveRequest(route, method string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(d.Seconds())
}
