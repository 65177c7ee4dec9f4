package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

func TestDispatchNotePDF(t *testing.T) {
	note := &export.DispatchNote{
		Movement: &entity.Movement{
			ID:                "3f2a9c1e-0000-4000-8000-000000000001",
			CreatedAt:         time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
			Store:             entity.StoreMikocheni,
			CustomerName:      "Serena Hotel",
			ResponsiblePerson: "Mr. Mushi",
			UseLocation:       "Posta",
			ExpectedReturnAt:  time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
			Status:            entity.MovementStatusPartialReturn,
		},
		Lines:        []export.NoteLine{{ItemID: "i1", ItemName: "Plastic chair", Dispatched: 30, Returned: 10, Outstanding: 20}},
		AuthorizedBy: "Neema",
		IssuedBy:     "Juma",
		Returns:      1,
	}
	data, err := NewMarotoPDFGenerator().DispatchNotePDF(context.Background(), note)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestInvoicePDF(t *testing.T) {
	inv := &entity.Invoice{
		InvoiceNumber: "WGS-2025-001",
		CustomerName:  "Serena Hotel",
		Items: []entity.InvoiceItem{
			{Description: "Plastic chairs", Quantity: decimal.NewFromInt(100), UnitPrice: decimal.NewFromInt(500)},
		},
		TaxRate:   decimal.NewFromInt(18),
		Status:    entity.InvoiceStatusSent,
		IssueDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
	inv.Recalculate()
	data, err := NewMarotoPDFGenerator().InvoicePDF(context.Background(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"TZS 0":         decimal.Zero,
		"TZS 999":       decimal.NewFromInt(999),
		"TZS 25,000":    decimal.NewFromInt(25000),
		"TZS 1,000,000": decimal.NewFromInt(1000000),
		"TZS -1,500":    decimal.NewFromInt(-1500),
		"TZS 236,000":   decimal.RequireFromString("235999.6"),
	}
	for want, in := range cases {
		assert.Equal(t, want, formatMoney(in))
	}
}
