package postgres

import (
	"context"

	"github.com/maxviazov/dashboard-service/internal/model"
	"github.com/maxviazov/dashboard-service/internal/repository"
)

type statsRepository struct{ pool repository.ConnPool }

func NewStatsRepository(pool repository.ConnPool) repository.StatsRepository {
	return &statsRepository{pool: pool}
}

// Counts runs one COUNT per table on a single lease. The first failure aborts
// the rest; callers never see a partially filled result.
func (r *statsRepository) Counts(ctx context.Context) (model.DashboardStats, error) {
	var out model.DashboardStats
	targets := []struct {
		table string
		dest  *int64
	}{
		{"users", &out.Users},
		{"posts", &out.Posts},
		{"comments", &out.Comments},
		{"sessions", &out.Sessions},
	}
	err := withLease(ctx, r.pool, "dashboard counts", func(l repository.Lease) error {
		for _, t := range targets {
			// table names come from the fixed list above, never from input
			if err := l.QueryRow(ctx, "SELECT COUNT(id) FROM "+t.table).Scan(t.dest); err != nil {
				return repository.MapPgError("count "+t.table, err)
			}
		}
		return nil
	})
	if err != nil {
		return model.DashboardStats{}, err
	}
	return out, nil
}

var _ repository.StatsRepository = (*statsRepository)(nil)
