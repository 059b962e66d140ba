package repository

import (
	"time"

	"github.com/maxviazov/dashboard-service/internal/model"
)

// Page limits for the activity feed.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// Page represents a simple limit/offset window for listing operations.
// Callers validate it; repositories trust it.
type Page struct {
	Limit  int
	Offset int
}

// ActivityKey is a position in (created_at DESC, id DESC) order.
// id breaks ties between rows that share created_at.
type ActivityKey struct {
	CreatedAt time.Time
	ID        int64
}

// KeyOf returns the sort key of a.
func KeyOf(a model.Activity) ActivityKey {
	return ActivityKey{CreatedAt: a.CreatedAt, ID: a.ID}
}
