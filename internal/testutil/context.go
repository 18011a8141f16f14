package testutil

import (
	"context"

	"github.com/maka2016/maka-stats/internal/types"
)

// SetupContext returns a context carrying the standard test tenant.
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = types.SetTenantID(ctx, "tenant_test")
	return ctx
}
