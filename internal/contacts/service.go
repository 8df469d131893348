package contacts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weiluntsai/backoffice-backend/internal/store"
	"github.com/weiluntsai/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/weiluntsai/backoffice-backend/pkg/errors"
)

// Service exposes internal contact management for one tenant at a time.
// Contacts carry no uniqueness constraint.
type Service interface {
	List(ctx context.Context, tenantID, search string) ([]models.Contact, error)
	Get(ctx context.Context, tenantID, id string) (*models.Contact, error)
	Create(ctx context.Context, tenantID string, input CreateInput) (*models.Contact, error)
	Update(ctx context.Context, tenantID, id string, input UpdateInput) (*models.Contact, error)
	Delete(ctx context.Context, tenantID, id string) error
}

// CreateInput holds the validated payload to create a contact.
type CreateInput struct {
	Name       string
	Department string
	Phone      string
	Email      string
}

// UpdateInput holds optional mutation values; nil fields are left untouched.
type UpdateInput struct {
	Name       *string
	Department *string
	Phone      *string
	Email      *string
}

type service struct {
	store *store.Store[models.Contact, *models.Contact]
}

// NewService constructs a contact service instance.
func NewService(st *store.Store[models.Contact, *models.Contact]) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("contact store required")
	}
	return &service{store: st}, nil
}

func (s *service) List(ctx context.Context, tenantID, search string) ([]models.Contact, error) {
	all, err := s.store.ListAll(ctx, tenantID)
	if err != nil {
		return nil, storeError(err, "db: list contacts")
	}
	if search == "" {
		return all, nil
	}
	needle := strings.ToLower(search)
	matched := make([]models.Contact, 0, len(all))
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.Department), needle) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (s *service) Get(ctx context.Context, tenantID, id string) (*models.Contact, error) {
	contact, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return nil, storeError(err, "db: get contact")
	}
	return contact, nil
}

func (s *service) Create(ctx context.Context, tenantID string, input CreateInput) (*models.Contact, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	contact := &models.Contact{
		Name:       input.Name,
		Department: input.Department,
		Phone:      input.Phone,
		Email:      input.Email,
	}
	contact.CreatedAt = now
	contact.UpdatedAt = now

	if _, err := s.store.Insert(ctx, tenantID, contact); err != nil {
		return nil, storeError(err, "db: insert contact")
	}
	return contact, nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, input UpdateInput) (*models.Contact, error) {
	if _, err := s.store.GetByID(ctx, tenantID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return nil, storeError(err, "db: get contact")
	}

	patch := map[string]any{
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if input.Name != nil && *input.Name != "" {
		patch["name"] = *input.Name
	}
	if input.Department != nil && *input.Department != "" {
		patch["department"] = *input.Department
	}
	if input.Phone != nil {
		patch["phone"] = *input.Phone
	}
	if input.Email != nil {
		patch["email"] = *input.Email
	}

	if err := s.store.Update(ctx, tenantID, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return nil, storeError(err, "db: update contact")
	}

	updated, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, storeError(err, "db: reload contact")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.store.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "contact not found")
		}
		return storeError(err, "db: delete contact")
	}
	return nil
}

func storeError(err error, msg string) error {
	if errors.Is(err, store.ErrUnavailable) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
