package events

import (
	"context"
	"time"

	ierr "github.com/maka2016/maka-stats/internal/errors"
)

// QueryParams scopes an event log query. StartTime and EndTime are required;
// every other filter is optional and combined with AND. Slice filters match
// with IN semantics.
type QueryParams struct {
	TenantID    string    `validate:"required"`
	StartTime   time.Time `validate:"required"`
	EndTime     time.Time `validate:"required"`
	EventNames  []string
	PageTypes   []string
	ObjectTypes []string

	// OnlyAuthenticated restricts the result to events carrying a non-null
	// uid. Used by the identity resolver.
	OnlyAuthenticated bool
}

func (p *QueryParams) Validate() error {
	if p.TenantID == "" {
		return ierr.NewError("tenant_id is required").
			WithHint("Event log queries must be tenant scoped").
			Mark(ierr.ErrValidation)
	}
	if p.StartTime.IsZero() || p.EndTime.IsZero() {
		return ierr.NewError("start_time and end_time are required").
			WithHint("Event log queries must be bounded in time").
			Mark(ierr.ErrValidation)
	}
	if p.EndTime.Before(p.StartTime) {
		return ierr.NewError("end_time must not precede start_time").
			WithReportableDetails(map[string]interface{}{
				"start_time": p.StartTime,
				"end_time":   p.EndTime,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Repository is the read contract against the event log store.
type Repository interface {
	// QueryEvents returns all events matching params, in the store's
	// default return order. The default order is not guaranteed to be
	// stable across runs.
	QueryEvents(ctx context.Context, params *QueryParams) ([]*Event, error)
}
