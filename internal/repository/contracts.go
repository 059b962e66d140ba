package repository

import (
	"context"

	"github.com/maxviazov/dashboard-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Row is a single-row result; Scan reports a no-row condition as an error.
type Row interface {
	Scan(dest ...any) error
}

// Rows is an ordered, forward-only result set.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Querier executes parameterized queries on a single connection.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) Row
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Lease is a connection checked out of a ConnPool. Release must be called exactly once.
type Lease interface {
	Querier
	Release()
}

// ConnPool hands out leases. I inject it instead of reaching for a process-wide pool.
type ConnPool interface {
	Acquire(ctx context.Context) (Lease, error)
}

// ActivityRepository reads the activity log in (created_at DESC, id DESC) order.
type ActivityRepository interface {
	// Recent returns the page at p.Offset. A non-zero offset is resolved to a
	// boundary key first and the page is fetched by seeking past it.
	Recent(ctx context.Context, p Page) ([]model.Activity, error)
	// RecentByOffset returns the same page with a plain OFFSET scan.
	// It exists as the reference Recent must agree with.
	RecentByOffset(ctx context.Context, p Page) ([]model.Activity, error)
	// RecentAfter returns up to limit rows strictly older than key.
	RecentAfter(ctx context.Context, key ActivityKey, limit int) ([]model.Activity, error)
}

// StatsRepository declares the aggregate row counts shown on the dashboard.
type StatsRepository interface {
	Counts(ctx context.Context) (model.DashboardStats, error)
}
