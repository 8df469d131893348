package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/weiluntsai/backoffice-backend/pkg/errors"
)

func TestExportCSVEmptyTenant(t *testing.T) {
	svc := setupOrderService(t)

	_, err := svc.ExportCSV(context.Background(), "tenant-a")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestExportCSVContent(t *testing.T) {
	svc := setupOrderService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, "tenant-a", CreateInput{
		ProductName:  `Vitamin "C", extra strength`,
		SerialNumber: "VC-001",
		UnitPrice:    12.5,
		Quantity:     3,
		StartDate:    "2026-01-01T00:00:00Z",
		EndDate:      "",
		CustomerName: "Acme Pharma",
	})
	require.NoError(t, err)

	body, err := svc.ExportCSV(ctx, "tenant-a")
	require.NoError(t, err)

	text := string(body)
	require.True(t, strings.HasPrefix(text, "\uFEFF"), "csv must start with a BOM")

	lines := strings.Split(strings.TrimRight(strings.TrimPrefix(text, "\uFEFF"), "\n"), "\n")
	require.Len(t, lines, 2)

	// The header row is bare; quoting applies to data cells only.
	assert.Equal(t,
		`Order ID,Product Name,Serial Number,Customer Name,Unit Price,Quantity,Total,Start Date,End Date,Created Date`,
		lines[0])
	assert.NotContains(t, lines[0], `"`)

	row := lines[1]
	// Every data cell is quoted, embedded quotes doubled.
	assert.Contains(t, row, `"Vitamin ""C"", extra strength"`)
	assert.Contains(t, row, `"`+created.ID+`"`)
	// Prices carry exactly two decimals.
	assert.Contains(t, row, `"12.50"`)
	assert.Contains(t, row, `"37.50"`)
	// Timestamps collapse to the calendar date, empty dates render as a dash.
	assert.Contains(t, row, `"2026-01-01"`)
	assert.Contains(t, row, `"-"`)
}

func TestExportCSVScopedToTenant(t *testing.T) {
	svc := setupOrderService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, "tenant-a", sampleOrder("VC-001"))
	require.NoError(t, err)

	_, err = svc.ExportCSV(ctx, "tenant-b")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestExportCSVOneRowPerOrder(t *testing.T) {
	svc := setupOrderService(t)
	ctx := context.Background()

	for _, serial := range []string{"VC-001", "VC-002", "VC-003"} {
		_, err := svc.Create(ctx, "tenant-a", sampleOrder(serial))
		require.NoError(t, err)
	}

	body, err := svc.ExportCSV(ctx, "tenant-a")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	assert.Len(t, lines, 4)
}
