package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireTenantMissingHeader(t *testing.T) {
	handler := RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a tenant")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "missing user id header", body.Message)
}

func TestRequireTenantBlankHeader(t *testing.T) {
	handler := RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a tenant")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(TenantHeader, "   ")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequireTenantInjectsContext(t *testing.T) {
	var seen string
	handler := RequireTenant(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TenantIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req.Header.Set(TenantHeader, "user-42")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "user-42", seen)
}

func TestTenantIDFromContextDefaults(t *testing.T) {
	assert.Equal(t, "", TenantIDFromContext(nil))
	assert.Equal(t, "", TenantIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
