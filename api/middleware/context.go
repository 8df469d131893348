package middleware

import "context"

type contextKey string

const ctxTenantID contextKey = "tenant_id"

// TenantIDFromContext returns the tenant injected by RequireTenant, or "".
func TenantIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxTenantID).(string); ok {
		return v
	}
	return ""
}

// WithTenantID injects the tenant identifier into the context.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxTenantID, tenantID)
}
