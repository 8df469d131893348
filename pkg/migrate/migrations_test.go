package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weiluntsai/backoffice-backend/pkg/migrate"
)

func TestValidateShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations failed validation: %v", err)
	}
}

func TestCoreTablesMigrationContents(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_core_tables.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no core tables migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE products",
		"CREATE TABLE orders",
		"CREATE TABLE customers",
		"CREATE TABLE contacts",
		"CREATE INDEX idx_products_tenant_id",
		"DROP TABLE IF EXISTS contacts",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestUniqueIndexMigrationContents(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_add_business_key_uniques.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no unique index migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE UNIQUE INDEX uq_products_tenant_name ON products (tenant_id, name)",
		"CREATE UNIQUE INDEX uq_orders_tenant_serial ON orders (tenant_id, serial_number)",
		"CREATE UNIQUE INDEX uq_customers_tenant_name ON customers (tenant_id, name)",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}
