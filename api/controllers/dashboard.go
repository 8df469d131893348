package controllers

import (
	"net/http"

	"github.com/weiluntsai/backoffice-backend/api/middleware"
	"github.com/weiluntsai/backoffice-backend/api/responses"
	"github.com/weiluntsai/backoffice-backend/api/validators"
	"github.com/weiluntsai/backoffice-backend/internal/dashboard"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
)

// DashboardOverview handles GET /api/dashboard: the statistics block plus
// the soon-to-expire product list in one payload.
func DashboardOverview(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		overview, err := svc.Overview(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, overview)
	}
}

// DashboardStats handles GET /api/dashboard/stats.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		stats, err := svc.Statistics(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, stats)
	}
}

type expiringProductsResponse struct {
	Success       bool                        `json:"success"`
	Data          []dashboard.ExpiringProduct `json:"data"`
	Count         int                         `json:"count"`
	DaysThreshold int                         `json:"daysThreshold"`
}

// DashboardExpiringProducts handles GET /api/dashboard/expiring-products?days=N.
func DashboardExpiringProducts(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		days, err := validators.ParseQueryInt(r, "days", dashboard.DefaultExpiringDays, 0, 3650)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		expiring, err := svc.ExpiringProducts(r.Context(), tenantID, days)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.Write(w, http.StatusOK, expiringProductsResponse{
			Success:       true,
			Data:          expiring,
			Count:         len(expiring),
			DaysThreshold: days,
		})
	}
}

// DashboardRecentOrders handles GET /api/dashboard/recent-orders?limit=N.
func DashboardRecentOrders(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		limit, err := validators.ParseQueryInt(r, "limit", dashboard.DefaultRecentLimit, 1, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recent, err := svc.RecentOrders(r.Context(), tenantID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, recent)
	}
}

// DashboardLowStock handles GET /api/dashboard/low-stock?threshold=N.
func DashboardLowStock(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		threshold, err := validators.ParseQueryInt(r, "threshold", dashboard.DefaultLowStockThreshold, 0, 1000000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		low, err := svc.LowStock(r.Context(), tenantID, threshold)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, low)
	}
}
