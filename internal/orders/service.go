package orders

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

const colSerialNumber store.Column = "serial_number"

// Service exposes order management for one tenant at a time.
type Service interface {
	List(ctx context.Context, tenantID, search string) ([]models.Order, error)
	Get(ctx context.Context, tenantID, id string) (*models.Order, error)
	Create(ctx context.Context, tenantID string, input CreateInput) (*models.Order, error)
	Update(ctx context.Context, tenantID, id string, input UpdateInput) (*models.Order, error)
	Delete(ctx context.Context, tenantID, id string) error
	ExportCSV(ctx context.Context, tenantID string) ([]byte, error)
}

// CreateInput holds the validated payload to create an order.
type CreateInput struct {
	ProductName  string
	SerialNumber string
	UnitPrice    float64
	Quantity     int
	StartDate    string
	EndDate      string
	CustomerName string
}

// UpdateInput holds optional mutation values; nil fields are left untouched.
type UpdateInput struct {
	ProductName  *string
	SerialNumber *string
	UnitPrice    *float64
	Quantity     *int
	StartDate    *string
	EndDate      *string
	CustomerName *string
}

type service struct {
	store *store.Store[models.Order, *models.Order]
}

// NewService constructs an order service instance.
func NewService(st *store.Store[models.Order, *models.Order]) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("order store required")
	}
	return &service{store: st}, nil
}

func (s *service) List(ctx context.Context, tenantID, search string) ([]models.Order, error) {
	all, err := s.store.ListAll(ctx, tenantID)
	if err != nil {
		return nil, storeError(err, "db: list orders")
	}
	if search == "" {
		return all, nil
	}
	needle := strings.ToLower(search)
	matched := make([]models.Order, 0, len(all))
	for _, o := range all {
		if strings.Contains(strings.ToLower(o.ProductName), needle) ||
			strings.Contains(strings.ToLower(o.SerialNumber), needle) ||
			strings.Contains(strings.ToLower(o.CustomerName), needle) {
			matched = append(matched, o)
		}
	}
	return matched, nil
}

func (s *service) Get(ctx context.Context, tenantID, id string) (*models.Order, error) {
	order, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, storeError(err, "db: get order")
	}
	return order, nil
}

func (s *service) Create(ctx context.Context, tenantID string, input CreateInput) (*models.Order, error) {
	if err := s.ensureUniqueSerial(ctx, tenantID, input.SerialNumber); err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	order := &models.Order{
		ProductName:  input.ProductName,
		SerialNumber: input.SerialNumber,
		UnitPrice:    input.UnitPrice,
		Quantity:     input.Quantity,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		CustomerName: input.CustomerName,
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	if _, err := s.store.Insert(ctx, tenantID, order); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, conflictError()
		}
		return nil, storeError(err, "db: insert order")
	}
	return order, nil
}

func (s *service) Update(ctx context.Context, tenantID, id string, input UpdateInput) (*models.Order, error) {
	existing, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, storeError(err, "db: get order")
	}

	if input.SerialNumber != nil && *input.SerialNumber != "" && *input.SerialNumber != existing.SerialNumber {
		if err := s.ensureUniqueSerial(ctx, tenantID, *input.SerialNumber); err != nil {
			return nil, err
		}
	}

	patch := map[string]any{
		"updated_at": time.Now().UTC().Format(time.RFC3339),
	}
	if input.ProductName != nil && *input.ProductName != "" {
		patch["product_name"] = *input.ProductName
	}
	if input.SerialNumber != nil && *input.SerialNumber != "" {
		patch["serial_number"] = *input.SerialNumber
	}
	if input.UnitPrice != nil {
		patch["unit_price"] = *input.UnitPrice
	}
	if input.Quantity != nil {
		patch["quantity"] = *input.Quantity
	}
	if input.StartDate != nil && *input.StartDate != "" {
		patch["start_date"] = *input.StartDate
	}
	if input.EndDate != nil && *input.EndDate != "" {
		patch["end_date"] = *input.EndDate
	}
	if input.CustomerName != nil {
		patch["customer_name"] = *input.CustomerName
	}

	if err := s.store.Update(ctx, tenantID, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if db.IsUniqueViolation(err) {
			return nil, conflictError()
		}
		return nil, storeError(err, "db: update order")
	}

	updated, err := s.store.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, storeError(err, "db: reload order")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.store.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return storeError(err, "db: delete order")
	}
	return nil
}

// ensureUniqueSerial is a read-before-write check; the unique index on
// (tenant_id, serial_number) catches the race between concurrent creates.
func (s *service) ensureUniqueSerial(ctx context.Context, tenantID, serial string) error {
	existing, err := s.store.FindByField(ctx, tenantID, colSerialNumber, serial)
	if err != nil {
		return storeError(err, "db: check serial number")
	}
	if len(existing) > 0 {
		return conflictError()
	}
	return nil
}

func conflictError() error {
	return pkgerrors.New(pkgerrors.CodeConflict, "serial number already in use, pick a unique serial")
}

func storeError(err error, msg string) error {
	if errors.Is(err, store.ErrUnavailable) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, msg)
}
