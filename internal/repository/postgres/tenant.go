package postgres

import (
	"context"

	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/postgres"
)

type TenantRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTenantRepository(db *postgres.DB, logger *logger.Logger) *TenantRepository {
	return &TenantRepository{db: db, logger: logger}
}

// ListTenantIDs returns the distinct tenants present in the user table.
func (r *TenantRepository) ListTenantIDs(ctx context.Context) ([]string, error) {
	var ids []string
	query := `SELECT DISTINCT tenant_id FROM users ORDER BY tenant_id`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &ids, query); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list tenants").
			Mark(ierr.ErrDatabase)
	}
	return ids, nil
}
