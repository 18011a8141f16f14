package work

import (
	"context"
	"time"
)

// Repository is the read contract against the work entity store.
type Repository interface {
	// FindCreatedBetween returns the works created inside [start, end].
	FindCreatedBetween(ctx context.Context, tenantID string, start, end time.Time) ([]*Work, error)
}
