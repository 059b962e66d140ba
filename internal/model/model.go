// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Activity is one row of the append-only activity log.
type Activity struct {
	ID        int64
	UserID    int64
	Action    string
	CreatedAt time.Time
}

// ActivityView is the wire shape of an Activity; the timestamp is rendered, never rewritten.
type ActivityView struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Action    string `json:"action"`
	CreatedAt string `json:"created_at"`
}

// NewActivityView projects a stored activity into its response shape.
// created_at is rendered as RFC 3339 with fractional seconds, in the zone the value carries.
func NewActivityView(a Activity) ActivityView {
	return ActivityView{
		ID:        a.ID,
		UserID:    a.UserID,
		Action:    a.Action,
		CreatedAt: a.CreatedAt.Format(time.RFC3339Nano),
	}
}

// ActivityFeed is one page of the recent-activity feed, newest first.
type ActivityFeed struct {
	Activities []ActivityView `json:"activities"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// DashboardStats holds exact row counts for the tracked entity tables.
type DashboardStats struct {
	Users    int64 `json:"users"`
	Posts    int64 `json:"posts"`
	Comments int64 `json:"comments"`
	Sessions int64 `json:"sessions"`
}
