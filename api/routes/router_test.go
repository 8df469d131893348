package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiluntsai/backoffice-backend/api/middleware"
	"github.com/weiluntsai/backoffice-backend/internal/contacts"
	"github.com/weiluntsai/backoffice-backend/internal/customers"
	"github.com/weiluntsai/backoffice-backend/internal/dashboard"
	"github.com/weiluntsai/backoffice-backend/internal/orders"
	"github.com/weiluntsai/backoffice-backend/internal/products"
	"github.com/weiluntsai/backoffice-backend/pkg/config"
	"github.com/weiluntsai/backoffice-backend/pkg/db/models"
	"github.com/weiluntsai/backoffice-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(ctx context.Context) error { return fmt.Errorf("not connected") }
func (stubPinger) Connected() bool                { return false }

type stubProducts struct{}

func (stubProducts) List(ctx context.Context, tenantID, search string) ([]models.Product, error) {
	return []models.Product{{Name: "Widget"}}, nil
}
func (stubProducts) Get(ctx context.Context, tenantID, id string) (*models.Product, error) {
	return &models.Product{Name: "Widget"}, nil
}
func (stubProducts) Create(ctx context.Context, tenantID string, input products.CreateInput) (*models.Product, error) {
	return &models.Product{Name: input.Name}, nil
}
func (stubProducts) Update(ctx context.Context, tenantID, id string, input products.UpdateInput) (*models.Product, error) {
	return &models.Product{Name: "Widget"}, nil
}
func (stubProducts) Delete(ctx context.Context, tenantID, id string) error { return nil }

type stubOrders struct{}

func (stubOrders) List(ctx context.Context, tenantID, search string) ([]models.Order, error) {
	return nil, nil
}
func (stubOrders) Get(ctx context.Context, tenantID, id string) (*models.Order, error) {
	return &models.Order{}, nil
}
func (stubOrders) Create(ctx context.Context, tenantID string, input orders.CreateInput) (*models.Order, error) {
	return &models.Order{SerialNumber: input.SerialNumber}, nil
}
func (stubOrders) Update(ctx context.Context, tenantID, id string, input orders.UpdateInput) (*models.Order, error) {
	return &models.Order{}, nil
}
func (stubOrders) Delete(ctx context.Context, tenantID, id string) error { return nil }
func (stubOrders) ExportCSV(ctx context.Context, tenantID string) ([]byte, error) {
	return []byte("\uFEFFOrder ID\n"), nil
}

type stubCustomers struct{}

func (stubCustomers) List(ctx context.Context, tenantID, search string) ([]models.Customer, error) {
	return nil, nil
}
func (stubCustomers) Get(ctx context.Context, tenantID, id string) (*models.Customer, error) {
	return &models.Customer{}, nil
}
func (stubCustomers) Create(ctx context.Context, tenantID string, input customers.CreateInput) (*models.Customer, error) {
	return &models.Customer{Name: input.Name}, nil
}
func (stubCustomers) Update(ctx context.Context, tenantID, id string, input customers.UpdateInput) (*models.Customer, error) {
	return &models.Customer{}, nil
}
func (stubCustomers) Delete(ctx context.Context, tenantID, id string) error { return nil }

type stubContacts struct{}

func (stubContacts) List(ctx context.Context, tenantID, search string) ([]models.Contact, error) {
	return nil, nil
}
func (stubContacts) Get(ctx context.Context, tenantID, id string) (*models.Contact, error) {
	return &models.Contact{}, nil
}
func (stubContacts) Create(ctx context.Context, tenantID string, input contacts.CreateInput) (*models.Contact, error) {
	return &models.Contact{Name: input.Name}, nil
}
func (stubContacts) Update(ctx context.Context, tenantID, id string, input contacts.UpdateInput) (*models.Contact, error) {
	return &models.Contact{}, nil
}
func (stubContacts) Delete(ctx context.Context, tenantID, id string) error { return nil }

type stubDashboard struct{}

func (stubDashboard) Overview(ctx context.Context, tenantID string) (*dashboard.Overview, error) {
	return &dashboard.Overview{}, nil
}
func (stubDashboard) Statistics(ctx context.Context, tenantID string) (*dashboard.Statistics, error) {
	return &dashboard.Statistics{TotalProducts: 1}, nil
}
func (stubDashboard) ExpiringProducts(ctx context.Context, tenantID string, withinDays int) ([]dashboard.ExpiringProduct, error) {
	return nil, nil
}
func (stubDashboard) RecentOrders(ctx context.Context, tenantID string, limit int) ([]models.Order, error) {
	return nil, nil
}
func (stubDashboard) LowStock(ctx context.Context, tenantID string, threshold int) ([]models.Product, error) {
	return nil, nil
}

func newTestRouter() http.Handler {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	return NewRouter(
		cfg,
		nil,
		stubPinger{},
		metrics.NewHTTPMetrics(prometheus.NewRegistry()),
		stubProducts{},
		stubOrders{},
		stubCustomers{},
		stubContacts{},
		stubDashboard{},
	)
}

func TestRouterRootAndHealth(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status   string `json:"status"`
		Database string `json:"database"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "not connected", health.Database)
}

func TestRouterDataRoutesRequireTenantHeader(t *testing.T) {
	router := newTestRouter()

	paths := []string{"/api/products", "/api/orders", "/api/customers", "/api/contacts", "/api/dashboard"}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestRouterListWithTenantHeader(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(middleware.TenantHeader, "user-42")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.Count)
}

func TestRouterExportRouteIsNotShadowed(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders/export/csv", nil)
	req.Header.Set(middleware.TenantHeader, "user-42")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
