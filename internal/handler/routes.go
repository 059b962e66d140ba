package handler

import "github.com/maxviazov/dashboard-service/internal/repository"

// DashboardPrefix is the base path for the dashboard read API.
// Keep a single source of truth to avoid path drift across handlers and tests.
const DashboardPrefix = "/api/dashboard"

// HealthPrefix mirrors the root probes under the API namespace.
const HealthPrefix = "/api/health"

// Query parameter defaults for the recent-activity feed.
const (
	defaultOffset = 0
	defaultLimit  = repository.DefaultPageLimit
)
