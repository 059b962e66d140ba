package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/maxviazov/dashboard-service/internal/model"
	"github.com/maxviazov/dashboard-service/internal/observability"
	"github.com/maxviazov/dashboard-service/internal/repository"
)

// All queries share the same total order; id breaks created_at ties so page
// boundaries are never ambiguous. The (created_at DESC, id DESC) index backs them.
const (
	selectFirstPage = `SELECT id, user_id, action, created_at
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	selectBoundary = `SELECT created_at, id
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT 1 OFFSET $1`

	selectAfterKey = `SELECT id, user_id, action, created_at
		FROM activities
		WHERE (created_at, id) < ($1, $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	selectOffsetScan = `SELECT id, user_id, action, created_at
		FROM activities
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`
)

type activityRepository struct{ pool repository.ConnPool }

func NewActivityRepository(pool repository.ConnPool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

// Recent serves offset-addressed pages with a seek instead of a skip.
//
// For offset > 0 it first resolves the boundary: the row at position offset-1,
// i.e. the last row of the previous page. That lookup still walks offset-1 index
// entries but fetches a single row; the page itself is then read with a strict
// row-value comparison against the boundary key. Both queries run sequentially
// on one lease without a transaction: rows appended between them sort ahead of
// the boundary and are excluded by the strict comparison.
func (r *activityRepository) Recent(ctx context.Context, p repository.Page) ([]model.Activity, error) {
	start := time.Now()
	if p.Offset == 0 {
		var out []model.Activity
		err := withLease(ctx, r.pool, "activities first page", func(l repository.Lease) error {
			var err error
			out, err = scanActivities(ctx, l, "activities first page", selectFirstPage, p.Limit)
			return err
		})
		if err != nil {
			return nil, err
		}
		observability.ObservePage(observability.StrategyFirstPage, time.Since(start))
		return out, nil
	}

	var out []model.Activity
	err := withLease(ctx, r.pool, "activities keyset page", func(l repository.Lease) error {
		key, found, err := boundary(ctx, l, p.Offset)
		if err != nil {
			return err
		}
		if !found {
			observability.RecordBoundaryMiss()
			out = []model.Activity{}
			return nil
		}
		out, err = scanActivities(ctx, l, "activities keyset page", selectAfterKey, key.CreatedAt, key.ID, p.Limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	observability.ObservePage(observability.StrategyKeyset, time.Since(start))
	return out, nil
}

// RecentByOffset is the linear-scan reference: cost grows with offset.
func (r *activityRepository) RecentByOffset(ctx context.Context, p repository.Page) ([]model.Activity, error) {
	start := time.Now()
	var out []model.Activity
	err := withLease(ctx, r.pool, "activities offset scan", func(l repository.Lease) error {
		var err error
		out, err = scanActivities(ctx, l, "activities offset scan", selectOffsetScan, p.Limit, p.Offset)
		return err
	})
	if err != nil {
		return nil, err
	}
	observability.ObservePage(observability.StrategyOffsetScan, time.Since(start))
	return out, nil
}

// RecentAfter continues from a key the caller already holds; no boundary lookup.
func (r *activityRepository) RecentAfter(ctx context.Context, key repository.ActivityKey, limit int) ([]model.Activity, error) {
	start := time.Now()
	var out []model.Activity
	err := withLease(ctx, r.pool, "activities cursor page", func(l repository.Lease) error {
		var err error
		out, err = scanActivities(ctx, l, "activities cursor page", selectAfterKey, key.CreatedAt, key.ID, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	observability.ObservePage(observability.StrategyCursor, time.Since(start))
	return out, nil
}

// boundary returns the key of the row at zero-based position offset-1.
// found is false when the log has offset rows or fewer.
func boundary(ctx context.Context, q repository.Querier, offset int) (key repository.ActivityKey, found bool, err error) {
	err = q.QueryRow(ctx, selectBoundary, offset-1).Scan(&key.CreatedAt, &key.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ActivityKey{}, false, nil
	}
	if err != nil {
		return repository.ActivityKey{}, false, repository.MapPgError("activities boundary lookup", err)
	}
	return key, true, nil
}

// scanActivities runs query and maps every row into model.Activity.
// The returned slice is never nil so empty pages serialise as [].
func scanActivities(ctx context.Context, q repository.Querier, op, query string, args ...any) ([]model.Activity, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, repository.MapPgError(op, err)
	}
	defer rows.Close()

	out := make([]model.Activity, 0)
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.CreatedAt); err != nil {
			return nil, repository.MapPgError(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(op, err)
	}
	return out, nil
}

var _ repository.ActivityRepository = (*activityRepository)(nil)
