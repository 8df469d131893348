package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weiluntsai/backoffice-backend/pkg/config"
	pkgerrors "github.com/weiluntsai/backoffice-backend/pkg/errors"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestWriteList(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteList(rec, []string{"a", "b"}, 2)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)
}

func TestWriteCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteCreated(rec, "product created", map[string]string{"id": "p1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "product created", env.Message)
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation",
			err:        pkgerrors.New(pkgerrors.CodeValidation, "missing user id header"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "missing user id header",
		},
		{
			name:       "not found",
			err:        pkgerrors.New(pkgerrors.CodeNotFound, "product not found"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "product not found",
		},
		{
			name:       "conflict answers 400",
			err:        pkgerrors.New(pkgerrors.CodeConflict, "product name already in use, pick a unique name"),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "product name already in use, pick a unique name",
		},
		{
			name:       "dependency",
			err:        pkgerrors.Wrap(pkgerrors.CodeDependency, fmt.Errorf("dial refused"), "database unavailable"),
			wantStatus: http.StatusServiceUnavailable,
			wantMsg:    "database unavailable",
		},
		{
			name:       "internal hides the message",
			err:        pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("boom"), "db: list products"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
		{
			name:       "untyped error maps to internal",
			err:        fmt.Errorf("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tc.wantMsg, env.Message)
		})
	}
}

func TestWriteErrorHidesCauseInProduction(t *testing.T) {
	// The env must be honored even when it was only set after process start,
	// as with a .env file loaded during bootstrap.
	t.Setenv("BACKOFFICE_APP_ENV", config.AppEnvProd)

	rec := httptest.NewRecorder()
	err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("dial tcp: secret dsn detail"), "db: list products")
	WriteError(context.Background(), nil, rec, err)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "internal server error", env.Message)
	assert.Empty(t, env.Error)
}

func TestWriteErrorShowsCauseOutsideProduction(t *testing.T) {
	t.Setenv("BACKOFFICE_APP_ENV", config.AppEnvDev)

	rec := httptest.NewRecorder()
	err := pkgerrors.Wrap(pkgerrors.CodeInternal, fmt.Errorf("boom"), "db: list products")
	WriteError(context.Background(), nil, rec, err)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "boom", env.Error)
}

func TestWriteErrorIncludesValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "missing or invalid required fields").
		WithDetails(map[string]string{"name": "is required"})
	WriteError(context.Background(), nil, rec, err)

	env := decodeEnvelope(t, rec)
	details, ok := env.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "is required", details["name"])
}
