package products

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weiluntsai/backoffice-backend/internal/store"
	"github.com/weiluntsai/backoffice-backend/pkg/db"
	"github.com/weiluntsai/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/weiluntsai/backoffice-backend/pkg/errors"
)

const colName store.Column = "name"

// Service exposes product specification management for one tenant at a time.
type Service interface {
	List(ctx context.Context, tenantID, search string) ([]models.Product, error)
	Get(ctx context.Context, tenantID, id string) (*models.Product, error)
	Create(ctx context.Context, tenantID string, input CreateInput) (*models.Product, error)
	Update(ctx context.Context, tenantID, id string, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// CreateInput holds the validated payload to create a product.
type CreateInput struct {
	Name           string
	Content        string
	CostPrice      float64
	SellingPrice   float64
	Quantity       int
	SerialPrefix   string
	ExpirationDate string
}

// UpdateInput holds optional mutation values; nil fields are left untouched.
type UpdateInput struct {
	Name           *string
	Content        *string
	CostPrice      *float64
	SellingPrice   *float64
	Quantity       *int
	SerialPrefix   *string
	ExpirationDate *string
}

type service struct {
	store *store.Store[models.Product, *models.Product]
}

// NewService constructs a product service instance.
func NewService(st *store.Store[models.Product, *models.Product]) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("product store required")
	}
	return &service{store: st}, nil
}

func (s *service) List(ctx context.Context, tenantID, search string) ([]models.Product, error) {
	all, err := s.store.ListAll(ctx, tenantID)
	if err != nil {
		return nil, storeError(err, "db: list products")
	}
	if search == "" {
		return all, nil
	}
	needle := strings.ToLower(search)
	matched := make([]models.Product, 0, len(all))
	for _, p := range all {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.SerialPrefix), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *service) Get(ctx context.Context, tenantID, id string) (*models.Product, error) {
	product, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, storeError(err, "db: get product")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, tenantID string, input CreateInput) (*models.Product, error) {
	if err := s.ensureUniqueName(ctx, tenantID, input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	product := &models.Product{
		Name:           input.Name,
		Content:        input.Content,
		CostPrice:      input.CostPrice,
		SellingPrice:   input.SellingPrice,
		Quantity:       input.Quantity,
		SerialPrefix:   input.SerialPrefix,
		ExpirationDate: input.ExpirationDate,
	}
	product.CreatedAt = now
	product.UpdatedAt = now

	if _, err := s.store.Insert(ctx, tenantID, product); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, conflictError()
		}
		return nil, storeError(err, "db: insert product")
	}
	return product, nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, input UpdateInput) (*models.Product, error) {
	existing, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, storeError(err, "db: get product")
	}

	if input.Name != nil && *input.Name != "" && *input.Name != existing.Name {
		if err := s.ensureUniqueName(ctx, tenantID, *input.Name); err != nil {
			return nil, err
		}
	}

	patch := map[string]any{
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if input.Name != nil && *input.Name != "" {
		patch["name"] = *input.Name
	}
	if input.Content != nil {
		patch["content"] = *input.Content
	}
	if input.CostPrice != nil {
		patch["cost_price"] = *input.CostPrice
	}
	if input.SellingPrice != nil {
		patch["selling_price"] = *input.SellingPrice
	}
	if input.Quantity != nil {
		patch["quantity"] = *input.Quantity
	}
	if input.SerialPrefix != nil {
		patch["serial_prefix"] = *input.SerialPrefix
	}
	if input.ExpirationDate != nil && *input.ExpirationDate != "" {
		patch["expiration_date"] = *input.ExpirationDate
	}

	if err := s.store.Update(ctx, tenantID, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if db.IsUniqueViolation(err) {
			return nil, conflictError()
		}
		return nil, storeError(err, "db: update product")
	}

	updated, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, storeError(err, "db: reload product")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.store.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return storeError(err, "db: delete product")
	}
	return nil
}

// ensureUniqueName is a read-before-write check; two concurrent creates can
// both pass it, in which case the unique index on (tenant_id, name) rejects
// the loser at insert time.
func (s *service) ensureUniqueName(ctx context.Context, tenantID, name string) error {
	existing, err := s.store.FindByField(ctx, tenantID, colName, name)
	if err != nil {
		return storeError(err, "db: check product name")
	}
	if len(existing) > 0 {
		return conflictError()
	}
	return nil
}

func conflictError() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "product name already in use, pick a unique name")
}

func storeError(err error, msg string) error {
	if errors.Is(err, store.ErrUnavailable) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
