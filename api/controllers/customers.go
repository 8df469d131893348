package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weiluntsai/backoffice-backend/api/middleware"
	"github.com/weiluntsai/backoffice-backend/api/responses"
	"github.com/weiluntsai/backoffice-backend/api/validators"
	"github.com/weiluntsai/backoffice-backend/internal/customers"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
)

// ListCustomers handles GET /api/customers with an optional search term.
func ListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
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

// GetCustomer handles GET /api/customers/{id}.
func GetCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		customer, err := svc.Get(r.Context(), tenantID, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, customer)
	}
}

type createCustomerRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contactPerson" validate:"required"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
}

// CreateCustomer handles POST /api/customers.
func CreateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), tenantID, customers.CreateInput{
			Name:          strings.TrimSpace(payload.Name),
			ContactPerson: payload.ContactPerson,
			Phone:         payload.Phone,
			Email:         payload.Email,
			Address:       payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "customer created", customer)
	}
}

type updateCustomerRequest struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contactPerson"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Address       *string `json:"address"`
}

// UpdateCustomer handles PUT /api/customers/{id} as a partial update.
func UpdateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), tenantID, chi.URLParam(r, "id"), customers.UpdateInput{
			Name:          payload.Name,
			ContactPerson: payload.ContactPerson,
			Phone:         payload.Phone,
			Email:         payload.Email,
			Address:       payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "customer updated", customer)
	}
}

// DeleteCustomer handles DELETE /api/customers/{id}.
func DeleteCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		if err := svc.Delete(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "customer deleted", nil)
	}
}
