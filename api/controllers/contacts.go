package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weiluntsai/backoffice-backend/api/middleware"
	"github.com/weiluntsai/backoffice-backend/api/responses"
	"github.com/weiluntsai/backoffice-backend/api/validators"
	"github.com/weiluntsai/backoffice-backend/internal/contacts"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
)

// ListContacts handles GET /api/contacts with an optional search term.
func ListContacts(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
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

// GetContact handles GET /api/contacts/{id}.
func GetContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		contact, err := svc.Get(r.Context(), tenantID, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, contact)
	}
}

type createContactRequest struct {
	Name       string `json:"name" validate:"required"`
	Department string `json:"department" validate:"required"`
	Phone      string `json:"phone"`
	Email      string `json:"email" validate:"omitempty,email"`
}

// CreateContact handles POST /api/contacts.
func CreateContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload createContactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.Create(r.Context(), tenantID, contacts.CreateInput{
			Name:       payload.Name,
			Department: payload.Department,
			Phone:      payload.Phone,
			Email:      payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "contact created", contact)
	}
}

type updateContactRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email" validate:"omitempty,email"`
}

// UpdateContact handles PUT /api/contacts/{id} as a partial update.
func UpdateContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload updateContactRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.Update(r.Context(), tenantID, chi.URLParam(r, "id"), contacts.UpdateInput{
			Name:       payload.Name,
			Department: payload.Department,
			Phone:      payload.Phone,
			Email:      payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "contact updated", contact)
	}
}

// DeleteContact handles DELETE /api/contacts/{id}.
func DeleteContact(svc contacts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		if err := svc.Delete(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "contact deleted", nil)
	}
}
