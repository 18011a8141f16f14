package user

import "context"

// Repository is the read contract against the user entity store.
type Repository interface {
	// GetByIDs bulk-loads users by uid. Unknown uids are simply absent
	// from the result map.
	GetByIDs(ctx context.Context, tenantID string, uids []int64) (map[int64]*User, error)
}
