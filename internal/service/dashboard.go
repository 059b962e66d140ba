package service

import (
	"context"
	"time"

	"github.com/maxviazov/dashboard-service/internal/model"
	"github.com/maxviazov/dashboard-service/internal/repository"
	"github.com/rs/zerolog"
)

// dashboardService validates requests and shapes repository rows into responses.
// It holds no mutable state and is safe for concurrent use.
type dashboardService struct {
	activities repository.ActivityRepository
	stats      repository.StatsRepository
	log        zerolog.Logger
}

func NewDashboardService(activities repository.ActivityRepository, stats repository.StatsRepository, logger zerolog.Logger) DashboardService {
	l := logger.With().Str("module", "service").Str("component", "dashboard").Logger()
	return &dashboardService{activities: activities, stats: stats, log: l}
}

func (s *dashboardService) Stats(ctx context.Context) (model.DashboardStats, error) {
	start := time.Now()
	out, err := s.stats.Counts(ctx)
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Msg("dashboard counts failed")
		return model.DashboardStats{}, err
	}
	s.log.Debug().Dur("took", time.Since(start)).Msg("dashboard counts served")
	return out, nil
}

func (s *dashboardService) RecentActivity(ctx context.Context, q ActivityQuery) (model.ActivityFeed, error) {
	page, key, err := validateActivityQuery(q)
	if err != nil {
		s.log.Debug().Int("offset", q.Offset).Int("limit", q.Limit).Interface("field_errors", FieldErrors(err)).Msg("activity query validation failed")
		return model.ActivityFeed{}, err
	}

	start := time.Now()
	var rows []model.Activity
	if key != nil {
		rows, err = s.activities.RecentAfter(ctx, *key, page.Limit)
	} else {
		rows, err = s.activities.Recent(ctx, page)
	}
	if err != nil {
		s.log.Error().Err(err).Int("limit", page.Limit).Int("offset", page.Offset).Bool("cursor", key != nil).Msg("recent activity failed")
		return model.ActivityFeed{}, err
	}

	feed := model.ActivityFeed{Activities: make([]model.ActivityView, 0, len(rows))}
	for _, a := range rows {
		feed.Activities = append(feed.Activities, model.NewActivityView(a))
	}
	// A short page is the last one; a full page may or may not have a successor.
	if len(rows) > 0 && len(rows) == page.Limit {
		feed.NextCursor = repository.EncodeCursor(repository.KeyOf(rows[len(rows)-1]))
	}

	s.log.Debug().
		Int("limit", page.Limit).
		Int("offset", page.Offset).
		Int("returned", len(rows)).
		Dur("took", time.Since(start)).
		Msg("recent activity served")
	return feed, nil
}
