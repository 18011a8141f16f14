package ledger

import (
	"context"
	"time"
)

// Repository is the read contract against the ledger store.
type Repository interface {
	// FindPaidBetween returns orders with paid status whose paid_at falls
	// inside [start, end], joined with their extension records.
	FindPaidBetween(ctx context.Context, tenantID string, start, end time.Time) ([]*Order, error)
}
