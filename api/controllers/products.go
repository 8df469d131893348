package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/weiluntsai/backoffice-backend/api/middleware"
	"github.com/weiluntsai/backoffice-backend/api/responses"
	"github.com/weiluntsai/backoffice-backend/api/validators"
	"github.com/weiluntsai/backoffice-backend/internal/products"
	"github.com/weiluntsai/backoffice-backend/pkg/logger"
)

// ListProducts handles GET /api/products with an optional search term.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
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

// GetProduct handles GET /api/products/{id}.
func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		product, err := svc.Get(r.Context(), tenantID, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, product)
	}
}

type createProductRequest struct {
	Name           string   `json:"name" validate:"required"`
	Content        string   `json:"content"`
	CostPrice      *float64 `json:"costPrice" validate:"required,gte=0"`
	SellingPrice   *float64 `json:"sellingPrice" validate:"required,gte=0"`
	Quantity       *int     `json:"quantity" validate:"omitempty,gte=0"`
	SerialPrefix   string   `json:"serialPrefix"`
	ExpirationDate string   `json:"expirationDate" validate:"required"`
}

func (req createProductRequest) toInput() products.CreateInput {
	input := products.CreateInput{
		Name:           strings.TrimSpace(req.Name),
		Content:        req.Content,
		CostPrice:      *req.CostPrice,
		SellingPrice:   *req.SellingPrice,
		SerialPrefix:   req.SerialPrefix,
		ExpirationDate: req.ExpirationDate,
	}
	if req.Quantity != nil {
		input.Quantity = *req.Quantity
	}
	return input
}

// CreateProduct handles POST /api/products.
func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), tenantID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, "product created", product)
	}
}

type updateProductRequest struct {
	Name           *string  `json:"name"`
	Content        *string  `json:"content"`
	CostPrice      *float64 `json:"costPrice" validate:"omitempty,gte=0"`
	SellingPrice   *float64 `json:"sellingPrice" validate:"omitempty,gte=0"`
	Quantity       *int     `json:"quantity" validate:"omitempty,gte=0"`
	SerialPrefix   *string  `json:"serialPrefix"`
	ExpirationDate *string  `json:"expirationDate"`
}

// UpdateProduct handles PUT /api/products/{id} as a partial update.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Update(r.Context(), tenantID, chi.URLParam(r, "id"), products.UpdateInput{
			Name:           payload.Name,
			Content:        payload.Content,
			CostPrice:      payload.CostPrice,
			SellingPrice:   payload.SellingPrice,
			Quantity:       payload.Quantity,
			SerialPrefix:   payload.SerialPrefix,
			ExpirationDate: payload.ExpirationDate,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "product updated", product)
	}
}

// DeleteProduct handles DELETE /api/products/{id}.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID := middleware.TenantIDFromContext(r.Context())

		if err := svc.Delete(r.Context(), tenantID, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, "product deleted", nil)
	}
}
