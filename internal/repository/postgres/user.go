package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/maka2016/maka-stats/internal/domain/user"
	ierr "github.com/maka2016/maka-stats/internal/errors"
	"github.com/maka2016/maka-stats/internal/logger"
	"github.com/maka2016/maka-stats/internal/postgres"
	"github.com/samber/lo"
)

type UserRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

// GetByIDs bulk-loads user records. UIDs absent from the store are simply
// missing from the result map; callers treat them as unregistered.
func (r *UserRepository) GetByIDs(ctx context.Context, tenantID string, uids []int64) (map[int64]*user.User, error) {
	result := make(map[int64]*user.User, len(uids))
	if len(uids) == 0 {
		return result, nil
	}

	// Chunked so very large uid universes stay under placeholder limits.
	for _, chunk := range lo.Chunk(lo.Uniq(uids), 5000) {
		query, args, err := sqlx.In(`
			SELECT uid, tenant_id, registered_at, register_platform
			FROM users
			WHERE tenant_id = ? AND uid IN (?)`,
			tenantID, chunk)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to build user lookup query").
				Mark(ierr.ErrDatabase)
		}

		var rows []*user.User
		q := r.db.GetQuerier(ctx)
		if err := q.SelectContext(ctx, &rows, q.Rebind(query), args...); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to load users by uid").
				WithReportableDetails(map[string]interface{}{
					"tenant_id": tenantID,
					"uid_count": len(chunk),
				}).
				Mark(ierr.ErrDatabase)
		}
		for _, u := range rows {
			result[u.UID] = u
		}
	}

	return result, nil
}
