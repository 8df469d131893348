package customers

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

// Service exposes customer management for one tenant at a time.
type Service interface {
	List(ctx context.Context, tenantID, search string) ([]models.Customer, error)
	Get(ctx context.Context, tenantID, id string) (*models.Customer, error)
	Create(ctx context.Context, tenantID string, input CreateInput) (*models.Customer, error)
	Update(ctx context.Context, tenantID, id string, input UpdateInput) (*models.Customer, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// CreateInput holds the validated payload to create a customer.
type CreateInput struct {
	Name          string
	ContactPerson string
	Phone         string
	Email         string
	Address       string
}

// UpdateInput holds optional mutation values; nil fields are left untouched.
type UpdateInput struct {
	Name          *string
	ContactPerson *string
	Phone         *string
	Email         *string
	Address       *string
}

type service struct {
	store *store.Store[models.Customer, *models.Customer]
}

// NewService constructs a customer service instance.
func NewService(st *store.Store[models.Customer, *models.Customer]) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("customer store required")
	}
	return &service{store: st}, nil
}

func (s *service) List(ctx context.Context, tenantID, search string) ([]models.Customer, error) {
	all, err := s.store.ListAll(ctx, tenantID)
	if err != nil {
		return nil, storeError(err, "db: list customers")
	}
	if search == "" {
		return all, nil
	}
	needle := strings.ToLower(search)
	matched := make([]models.Customer, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.ContactPerson), needle) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (s *service) Get(ctx context.Context, tenantID, id string) (*models.Customer, error) {
	customer, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, storeError(err, "db: get customer")
	}
	return customer, nil
}

func (s *service) Create(ctx context.Context, tenantID string, input CreateInput) (*models.Customer, error) {
	if err := s.ensureUniqueName(ctx, tenantID, input.Name); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	customer := &models.Customer{
		Name:          input.Name,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		Email:         input.Email,
		Address:       input.Address,
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if _, err := s.store.Insert(ctx, tenantID, customer); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, conflictError()
		}
		return nil, storeError(err, "db: insert customer")
	}
	return customer, nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, input UpdateInput) (*models.Customer, error) {
	existing, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, storeError(err, "db: get customer")
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
	if input.ContactPerson != nil && *input.ContactPerson != "" {
		patch["contact_person"] = *input.ContactPerson
	}
	if input.Phone != nil {
		patch["phone"] = *input.Phone
	}
	if input.Email != nil {
		patch["email"] = *input.Email
	}
	if input.Address != nil {
		patch["address"] = *input.Address
	}

	if err := s.store.Update(ctx, tenantID, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		if db.IsUniqueViolation(err) {
			return nil, conflictError()
		}
		return nil, storeError(err, "db: update customer")
	}

	updated, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, storeError(err, "db: reload customer")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.store.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return storeError(err, "db: delete customer")
	}
	return nil
}

// ensureUniqueName is a read-before-write check; the unique index on
// (tenant_id, name) catches the race between concurrent creates.
func (s *service) ensureUniqueName(ctx context.Context, tenantID, name string) error {
	existing, err := s.store.FindByField(ctx, tenantID, colName, name)
	if err != nil {
		return storeError(err, "db: check customer name")
	}
	if len(existing) > 0 {
		return conflictError()
	}
	return nil
}

func conflictError() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "customer name already in use, pick a unique name")
}

func storeError(err error, msg string) error {
	if errors.Is(err, store.ErrUnavailable) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
