package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weiluntsai/backoffice-backend/pkg/db/models"
)

// ErrNotFound is returned when no document matches the tenant/id pair. A
// document owned by another tenant is indistinguishable from a missing one.
var ErrNotFound = errors.New("record not found")

// ErrUnavailable wraps connection failures so callers can answer 503 instead
// of 500.
var ErrUnavailable = errors.New("store unavailable")

// Conn yields the shared database handle, dialing it on first use.
type Conn interface {
	DB(ctx context.Context) (*gorm.DB, error)
}

// Doc is implemented by every model through the embedded models.Base.
type Doc interface {
	Ref() *models.Base
}

// Column names a model column usable with FindByField. The resource managers
// own these as compile-time constants; arbitrary caller input must never be
// converted to a Column.
type Column string

// Store is a tenant-scoped document collection over a single GORM table.
// Every operation filters on tenant_id, so a cross-tenant id never matches.
type Store[T any, PT interface {
	Doc
	*T
}] struct {
	conn Conn
}

// New builds a store for the model T on top of the shared connection.
func New[T any, PT interface {
	Doc
	*T
}](conn Conn) *Store[T, PT] {
	return &Store[T, PT]{conn: conn}
}

func (s *Store[T, PT]) db(ctx context.Context) (*gorm.DB, error) {
	db, err := s.conn.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return db, nil
}

// ListAll returns every document owned by the tenant in store iteration
// order.
func (s *Store[T, PT]) ListAll(ctx context.Context, tenantID string) ([]T, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one document by id within the tenant's scope.
func (s *Store[T, PT]) GetByID(ctx context.Context, tenantID, id string) (*T, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var doc T
	err = db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindByField returns the documents whose column equals value, within the
// tenant's scope.
func (s *Store[T, PT]) FindByField(ctx context.Context, tenantID string, col Column, value any) ([]T, error) {
	db, err := s.db(ctx)
	if err != nil {
		return nil, err
	}
	var out []T
	err = db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where(fmt.Sprintf("%s = ?", col), value).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Insert persists the document under the tenant, assigning a fresh id when
// the caller left it empty, and returns the id.
func (s *Store[T, PT]) Insert(ctx context.Context, tenantID string, doc PT) (string, error) {
	db, err := s.db(ctx)
	if err != nil {
		return "", err
	}
	base := doc.Ref()
	base.TenantID = tenantID
	if base.ID == "" {
		base.ID = uuid.NewString()
	}
	if err := db.WithContext(ctx).Create(doc).Error; err != nil {
		return "", err
	}
	return base.ID, nil
}

// Update applies a merge-patch: only the columns present in patch are
// written, everything else is untouched.
func (s *Store[T, PT]) Update(ctx context.Context, tenantID, id string, patch map[string]any) error {
	if len(patch) == 0 {
		return nil
	}
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	var doc T
	res := db.WithContext(ctx).
		Model(&doc).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Updates(patch)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete permanently removes the document.
func (s *Store[T, PT]) Delete(ctx context.Context, tenantID, id string) error {
	db, err := s.db(ctx)
	if err != nil {
		return err
	}
	var doc T
	res := db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&doc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
