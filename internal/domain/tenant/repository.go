package tenant

import "context"

// Repository lists the tenants known to the entity store. The backfill
// driver iterates this set when the CLI is invoked without a tenant.
type Repository interface {
	ListTenantIDs(ctx context.Context) ([]string, error)
}
