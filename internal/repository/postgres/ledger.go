package postgres

import (
	"context"
	"time"

	"github.com/maka2016/maka-stats/internal/domain/ledger"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/postgres"
)

type LedgerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewLedgerRepository(db *postgres.DB, logger *logger.Logger) *LedgerRepository {
	return &LedgerRepository{db: db, logger: logger}
}

// FindPaidBetween returns paid orders with their extension record. The
// extension join is LEFT so an order without one still counts toward GMV,
// just with empty platform and template dimensions.
func (r *LedgerRepository) FindPaidBetween(ctx context.Context, tenantID string, start, end time.Time) ([]*ledger.Order, error) {
	query := `
		SELECT
			o.id,
			o.tenant_id,
			o.uid,
			o.amount_cents,
			COALESCE(oe.platform, '') AS platform,
			COALESCE(oe.template_id, '') AS template_id,
			o.status,
			o.paid_at
		FROM orders o
		LEFT JOIN order_extensions oe ON oe.order_id = o.id AND oe.tenant_id = o.tenant_id
		WHERE o.tenant_id = $1
		AND o.status = $2
		AND o.paid_at >= $3
		AND o.paid_at <= $4`

	var rows []*ledger.Order
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, tenantID, ledger.OrderStatusPaid, start, end); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load paid orders").
			WithReportableDetails(map[string]interface{}{
				"tenant_id": tenantID,
				"start":     start,
				"end":       end,
			}).
			Mark(ierr.ErrDatabase)
	}
	return rows, nil
}
