package customers

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/weiluntsai/backoffice-backend/internal/store"
	"github.com/weiluntsai/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/weiluntsai/backoffice-backend/pkg/errors"
)

type testConn struct {
	db *gorm.DB
}

func (c *testConn) DB(ctx context.Context) (*gorm.DB, error) {
	return c.db, nil
}

func setupCustomerService(t *testing.T) Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  tenant_id TEXT NOT NULL,
  name TEXT NOT NULL,
  contact_person TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL DEFAULT '',
  UNIQUE (tenant_id, name)
);`
	require.NoError(t, db.Exec(schema).Error)

	svc, err := NewService(store.New[models.Customer, *models.Customer](&testConn{db: db}))
	require.NoError(t, err)
	return svc
}

func TestCustomerCreateAndGet(t *testing.T) {
	svc := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "tenant-a", CreateInput{
		Name:          "Acme Pharma",
		ContactPerson: "Jordan Lee",
		Phone:         "+886-2-1234-5678",
		Email:         "orders@acme.example",
		Address:       "1 Main St",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	got, err := svc.Get(ctx, "tenant-a", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Lee", got.ContactPerson)
	assert.Equal(t, "orders@acme.example", got.Email)
}

func TestCustomerDuplicateNameSameTenant(t *testing.T) {
	svc := setupCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tenant-a", CreateInput{Name: "Acme Pharma", ContactPerson: "Jordan Lee"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "tenant-a", CreateInput{Name: "Acme Pharma", ContactPerson: "Casey Kim"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	_, err = svc.Create(ctx, "tenant-b", CreateInput{Name: "Acme Pharma", ContactPerson: "Jordan Lee"})
	assert.NoError(t, err)
}

func TestCustomerUpdateMergesFields(t *testing.T) {
	svc := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "tenant-a", CreateInput{
		Name:          "Acme Pharma",
		ContactPerson: "Jordan Lee",
		Phone:         "555-0001",
		Address:       "1 Main St",
	})
	require.NoError(t, err)

	blank := ""
	phone := "555-0002"
	updated, err := svc.Update(ctx, "tenant-a", created.ID, UpdateInput{
		Name:          &blank,
		ContactPerson: &blank,
		Phone:         &phone,
		Address:       &blank,
	})
	require.NoError(t, err)

	// Blank name and contact person are ignored; phone and address are free
	// text and apply as sent.
	assert.Equal(t, "Acme Pharma", updated.Name)
	assert.Equal(t, "Jordan Lee", updated.ContactPerson)
	assert.Equal(t, "555-0002", updated.Phone)
	assert.Equal(t, "", updated.Address)
}

func TestCustomerSearchNameAndContactPerson(t *testing.T) {
	svc := setupCustomerService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tenant-a", CreateInput{Name: "Acme Pharma", ContactPerson: "Jordan Lee"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "tenant-a", CreateInput{Name: "Globex", ContactPerson: "Casey Kim"})
	require.NoError(t, err)

	byName, err := svc.List(ctx, "tenant-a", "acme")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Acme Pharma", byName[0].Name)

	byContact, err := svc.List(ctx, "tenant-a", "casey")
	require.NoError(t, err)
	require.Len(t, byContact, 1)
	assert.Equal(t, "Globex", byContact[0].Name)
}

func TestCustomerDeleteCrossTenant(t *testing.T) {
	svc := setupCustomerService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "tenant-a", CreateInput{Name: "Acme Pharma", ContactPerson: "Jordan Lee"})
	require.NoError(t, err)

	err = svc.Delete(ctx, "tenant-b", created.ID)
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// Still present for the owner.
	_, err = svc.Get(ctx, "tenant-a", created.ID)
	assert.NoError(t, err)
}
