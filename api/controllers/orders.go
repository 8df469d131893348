package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/weiluntsai/backoffice-backend/api/middleware"
	"github.com/weiluntsai/backoffice-backend/api/responses"
	"github.com/weiluntsai/backoffice-backend/api/validators"
	"github.com/weiluntsai/backoffice-backend/internal/orders"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
)

// ListOrders handles GET /api/orders with an optional search term.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())
		search := strings.TrimSpace(r.URL.Query().Get("search"))

		items, err := svc.List(r.Context(), tenantID, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, items, len(items))
	}
}

// GetOrder handles GET /api/orders/{id}.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		order, err := svc.Get(r.Context(), tenantID, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, order)
	}
}

type createOrderRequest struct {
	ProductName  string   `json:"productName" validate:"required"`
	SerialNumber string   `json:"serialNumber" validate:"required"`
	UnitPrice    *float64 `json:"unitPrice" validate:"required"`
	Quantity     int      `json:"quantity" validate:"required"`
	StartDate    string   `json:"startDate" validate:"required"`
	EndDate      string   `json:"endDate" validate:"required"`
	CustomerName string   `json:"customerName"`
}

// CreateOrder handles POST /api/orders.
func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Create(r.Context(), tenantID, orders.CreateInput{
			ProductName:  payload.ProductName,
			SerialNumber: payload.SerialNumber,
			UnitPrice:    *payload.UnitPrice,
			Quantity:     payload.Quantity,
			StartDate:    payload.StartDate,
			EndDate:      payload.EndDate,
			CustomerName: payload.CustomerName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "order created", order)
	}
}

type updateOrderRequest struct {
	ProductName  *string  `json:"productName"`
	SerialNumber *string  `json:"serialNumber"`
	UnitPrice    *float64 `json:"unitPrice"`
	Quantity     *int     `json:"quantity"`
	StartDate    *string  `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	CustomerName *string  `json:"customerName"`
}

// UpdateOrder handles PUT /api/orders/{id} as a partial update.
func UpdateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Update(r.Context(), tenantID, chi.URLParam(r, "id"), orders.UpdateInput{
			ProductName:  payload.ProductName,
			SerialNumber: payload.SerialNumber,
			UnitPrice:    payload.UnitPrice,
			Quantity:     payload.Quantity,
			StartDate:    payload.StartDate,
			EndDate:      payload.EndDate,
			CustomerName: payload.CustomerName,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "order updated", order)
	}
}

// DeleteOrder handles DELETE /api/orders/{id}.
func DeleteOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		if err := svc.Delete(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "order deleted", nil)
	}
}

// ExportOrdersCSV handles GET /api/orders/export/csv as a file download.
func ExportOrdersCSV(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		body, err := svc.ExportCSV(r.Context(), tenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := fmt.Sprintf("Order_Quote_%s.csv", time.Now().Format("2006-01-02"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(body); err != nil && logg != nil {
			logg.Error(r.Context(), "failed to write csv response", err)
		}
	}
}
