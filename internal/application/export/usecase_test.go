package export_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/wegesa-api/internal/application/export"
	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/memory"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/xlsx"
)

type captureRenderer struct {
	note    *export.DispatchNote
	invoice *entity.Invoice
}

func (c *captureRenderer) DispatchNotePDF(_ context.Context, note *export.DispatchNote) ([]byte, error) {
	c.note = note
	return []byte("%PDF-note"), nil
}

func (c *captureRenderer) InvoicePDF(_ context.Context, inv *entity.Invoice) ([]byte, error) {
	c.invoice = inv
	return []byte("%PDF-invoice"), nil
}

func setup(t *testing.T) (*export.UseCase, *captureRenderer, *ledger.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u-ops", Name: "Neema Ops", Email: "ops@wegesa.co", Role: entity.RoleOperation, IsActive: true}))
	require.NoError(t, store.Items().Create(ctx, &entity.Item{ID: "i1", Name: "Plastic chair", Type: "Chairs", Quantity: 100, InStock: 100, Store: entity.StoreBoba}))
	require.NoError(t, store.Items().Create(ctx, &entity.Item{ID: "i2", Name: "Round table", Type: "Tables", Quantity: 20, InStock: 20, Store: entity.StoreBoba}))

	ledgerUC := ledger.NewUseCase(store, store.Items(), store.Movements(), store.Returns(), store.Users())
	renderer := &captureRenderer{}
	uc := export.NewUseCase(export.Repos{
		Items:        store.Items(),
		Movements:    store.Movements(),
		Returns:      store.Returns(),
		Users:        store.Users(),
		Invoices:     store.Invoices(),
		Transactions: store.Transactions(),
		Bookings:     store.Bookings(),
		Employees:    store.Employees(),
	}, ledgerUC, xlsx.NewWriter(), renderer)
	return uc, renderer, ledgerUC, store
}

func TestDispatchNotePDF(t *testing.T) {
	uc, renderer, ledgerUC, _ := setup(t)
	ctx := context.Background()

	id, err := ledgerUC.CreateDispatch(ctx, ledger.DispatchInput{
		Store:              entity.StoreBoba,
		Lines:              []entity.DispatchLine{{ItemID: "i1", Quantity: 30}, {ItemID: "i2", Quantity: 4}},
		CustomerName:       "Serena Hotel",
		ResponsiblePerson:  "Mr. Mushi",
		UseLocation:        "Posta",
		ExpectedReturnAt:   time.Now().Add(48 * time.Hour),
		AuthorizedByUserID: "u-ops",
		IssuedByUserID:     "u-ops",
	})
	require.NoError(t, err)
	_, err = ledgerUC.RegisterReturn(ctx, ledger.ReturnInput{MovementID: id, ReceivedByUserID: "u-ops", Lines: []entity.DispatchLine{{ItemID: "i1", Quantity: 10}}})
	require.NoError(t, err)

	data, name, err := uc.DispatchNotePDF(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-note", string(data))
	assert.Equal(t, "despacho_"+id[:8]+".pdf", name)

	require.NotNil(t, renderer.note)
	assert.Equal(t, "Neema Ops", renderer.note.AuthorizedBy)
	assert.Equal(t, 1, renderer.note.Returns)
	require.Len(t, renderer.note.Lines, 2)
	assert.Equal(t, export.NoteLine{ItemID: "i1", ItemName: "Plastic chair", Dispatched: 30, Returned: 10, Outstanding: 20}, renderer.note.Lines[0])
	assert.Equal(t, 4, renderer.note.Lines[1].Outstanding)

	_, _, err = uc.DispatchNotePDF(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrMovementNotFound)
}

func TestInvoicePDF(t *testing.T) {
	uc, renderer, _, store := setup(t)
	ctx := context.Background()
	require.NoError(t, store.Invoices().Create(ctx, &entity.Invoice{ID: "f1", InvoiceNumber: "WGS-2025-001", Total: decimal.NewFromInt(10)}))

	_, name, err := uc.InvoicePDF(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, "factura_WGS-2025-001.pdf", name)
	assert.Equal(t, "f1", renderer.invoice.ID)

	_, _, err = uc.InvoicePDF(ctx, "f2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSpreadsheet_Inventory(t *testing.T) {
	uc, _, _, _ := setup(t)

	data, name, err := uc.Spreadsheet(context.Background(), export.DatasetInventory)
	require.NoError(t, err)
	assert.Equal(t, "wegesa_inventory.xlsx", name)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Plastic chair", rows[1][0])
	assert.Equal(t, "Boba", rows[1][6])
}

func TestParseDataset(t *testing.T) {
	d, err := export.ParseDataset("Invoices.xlsx")
	require.NoError(t, err)
	assert.Equal(t, export.DatasetInvoices, d)
	assert.True(t, d.Finance())

	d, err = export.ParseDataset("employees")
	require.NoError(t, err)
	assert.False(t, d.Finance())

	_, err = export.ParseDataset("salaries")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
