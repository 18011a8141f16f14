package postgres

import (
	"context"
	"time"

	"github.com/maka2016/maka-stats/internal/domain/work"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/postgres"
)

type WorkRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewWorkRepository(db *postgres.DB, logger *logger.Logger) *WorkRepository {
	return &WorkRepository{db: db, logger: logger}
}

// FindCreatedBetween returns the creation records inside [start, end]. The
// entity store is the second evidence source for creations alongside the
// event log.
func (r *WorkRepository) FindCreatedBetween(ctx context.Context, tenantID string, start, end time.Time) ([]*work.Work, error) {
	query := `
		SELECT id, tenant_id, uid, template_id, platform, created_at
		FROM works
		WHERE tenant_id = $1
		AND created_at >= $2
		AND created_at <= $3`

	var rows []*work.Work
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, tenantID, start, end); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to load creation records").
			WithReportableDetails(map[string]interface{}{
				"tenant_id": tenantID,
				"start":     start,
				"end":       end,
			}).
			Mark(ierr.ErrDatabase)
	}
	return rows, nil
}
