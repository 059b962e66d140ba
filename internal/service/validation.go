package service

import (
	"fmt"
	"strings"

	"github.com/maxviazov/dashboard-service/internal/repository"
)

// validateActivityQuery enforces the feed contract before any storage work:
// offset >= 0, limit in [1, MaxPageLimit], and a cursor only on its own.
func validateActivityQuery(q ActivityQuery) (repository.Page, *repository.ActivityKey, error) {
	var ferrs []FieldError
	if q.Offset < 0 {
		ferrs = append(ferrs, FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if q.Limit < 1 || q.Limit > repository.MaxPageLimit {
		ferrs = append(ferrs, FieldError{Field: "limit", Message: fmt.Sprintf("must be between 1 and %d", repository.MaxPageLimit)})
	}

	var key *repository.ActivityKey
	if token := strings.TrimSpace(q.Cursor); token != "" {
		if q.Offset > 0 {
			ferrs = append(ferrs, FieldError{Field: "cursor", Message: "'cursor' and 'offset' are mutually exclusive"})
		}
		k, err := repository.DecodeCursor(token)
		if err != nil {
			ferrs = append(ferrs, FieldError{Field: "cursor", Message: "is not a valid continuation token"})
		} else {
			key = &k
		}
	}

	if err := newInvalidInput(ferrs); err != nil {
		return repository.Page{}, nil, err
	}
	return repository.Page{Limit: q.Limit, Offset: q.Offset}, key, nil
}
