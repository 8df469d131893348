package middleware

import (
	"net/http"
	"strings"

	"github.com/weiluntsai/backoffice-backend/api/responses"
	pkgerrors "github.com/weiluntsai/backoffice-backend/pkg/errors"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
)

// TenantHeader carries the caller-supplied tenant identifier. There is no
// session layer behind it; the API trusts the header as-is.
const TenantHeader = "X-User-Id"

// RequireTenant extracts the tenant id from the request header and rejects
// requests without one. Every data route sits behind this; there is no
// default-tenant fallback.
func RequireTenant(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tenantID := strings.TrimSpace(r.Header.Get(TenantHeader))
			if tenantID == "" {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "missing user id header"))
				return
			}

			ctx := WithTenantID(r.Context(), tenantID)
			if logg != nil {
				ctx = logg.WithTenantID(ctx, tenantID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
