package orders

import (
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/weiluntsai/backoffice-backend/pkg/errors"
)

// csvHeader uses human labels, matching the spreadsheet the back office hands
// to accounting.
var csvHeader = []string{
	"Order ID",
	"Product Name",
	"Serial Number",
	"Customer Name",
	"Unit Price",
	"Quantity",
	"Total",
	"Start Date",
	"End Date",
	"Created Date",
}

// ExportCSV renders every order of the tenant as a UTF-8 CSV document with a
// leading byte-order-mark. Rows follow store iteration order. With zero
// orders the export fails as not-found rather than producing an empty file.
func (s *service) ExportCSV(ctx context.Context, tenantID string) ([]byte, error) {
	all, err := s.store.ListAll(ctx, tenantID)
	if err != nil {
		return nil, storeError(err, "db: export orders")
	}
	if len(all) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no orders to export")
	}

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	// The header row goes out unquoted; only data cells are quoted.
	buf.WriteString(strings.Join(csvHeader, ","))
	buf.WriteByte('\n')

	for _, order := range all {
		unitPrice := decimal.NewFromFloat(order.UnitPrice)
		total := unitPrice.Mul(decimal.NewFromInt(int64(order.Quantity)))

		writeCSVRow(&buf, []string{
			order.ID,
			order.ProductName,
			order.SerialNumber,
			order.CustomerName,
			unitPrice.StringFixed(2),
			strconv.Itoa(order.Quantity),
			total.StringFixed(2),
			csvDate(order.StartDate),
			csvDate(order.EndDate),
			csvDate(order.CreatedAt),
		})
	}

	return buf.Bytes(), nil
}

// writeCSVRow quotes every data cell unconditionally, doubling embedded
// quotes. encoding/csv is deliberately not used here: it quotes only when
// necessary, and the consuming spreadsheet template expects fully quoted
// data cells under a bare header.
func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}

// csvDate keeps only the calendar-date portion of an ISO timestamp.
func csvDate(value string) string {
	if value == "" {
		return "-"
	}
	if idx := strings.IndexByte(value, 'T'); idx >= 0 {
		return value[:idx]
	}
	return value
}
