package types

import (
	"context"
	"fmt"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxTenantID      ContextKey = "ctx_tenant_id"
	CtxJobDate       ContextKey = "ctx_job_date"
	CtxDBTransaction ContextKey = "ctx_db_transaction"

	// DefaultTenantID is used by scripts and tests that do not care about tenancy
	DefaultTenantID = "00000000-0000-0000-0000-000000000000"
)

func GetTenantID(ctx context.Context) string {
	if tenantID, ok := ctx.Value(CtxTenantID).(string); ok {
		return tenantID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

// GetJobDate returns the statistics date the current job run is processing,
// in YYYY-MM-DD form, or "" when not running inside a job.
func GetJobDate(ctx context.Context) string {
	if date, ok := ctx.Value(CtxJobDate).(string); ok {
		return date
	}
	return ""
}

// SetTenantID sets the tenant ID in the context
func SetTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, CtxTenantID, tenantID)
}

// SetJobDate sets the statistics date in the context
func SetJobDate(ctx context.Context, date string) context.Context {
	return context.WithValue(ctx, CtxJobDate, date)
}

// ValidateTenantContext validates that the required tenant context fields are present
func ValidateTenantContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context is nil")
	}

	tenantID := GetTenantID(ctx)
	if tenantID == "" {
		return fmt.Errorf("no tenant context found in context")
	}

	return nil
}
