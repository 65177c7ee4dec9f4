package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/wegesa-api/internal/application/analytics"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/infrastructure/memory"
)

// miércoles
var now = time.Date(2025, 3, 12, 10, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func seedInventory(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	items := []*entity.Item{
		{ID: "i1", Name: "Plastic chair", Type: "Chairs", Quantity: 100, InStock: 60, Store: entity.StoreBoba},
		{ID: "i2", Name: "Tent", Type: "", Quantity: 50, InStock: 50, Store: entity.StoreMikocheni},
		{ID: "i3", Name: "Chiavari chair", Type: "Chairs", Quantity: 10, InStock: 0, Store: entity.StoreBoba},
	}
	for _, it := range items {
		require.NoError(t, store.Items().Create(ctx, it))
	}
	movs := []*entity.Movement{
		{ID: "m1", CreatedAt: day(2025, 3, 11), Store: entity.StoreBoba, Status: entity.MovementStatusOut, ExpectedReturnAt: day(2025, 3, 10), Lines: []entity.DispatchLine{{ItemID: "i1", Quantity: 40}}},
		{ID: "m2", CreatedAt: day(2025, 3, 2), Store: entity.StoreBoba, Status: entity.MovementStatusReturned, ExpectedReturnAt: day(2025, 3, 5), Lines: []entity.DispatchLine{{ItemID: "i1", Quantity: 5}}},
		{ID: "m3", CreatedAt: day(2025, 1, 15), Store: entity.StoreBoba, Status: entity.MovementStatusPartialReturn, ExpectedReturnAt: day(2025, 4, 1), Lines: []entity.DispatchLine{{ItemID: "i3", Quantity: 10}}},
		{ID: "m4", CreatedAt: day(2024, 12, 20), Store: entity.StoreMikocheni, Status: entity.MovementStatusReturned, ExpectedReturnAt: day(2024, 12, 27), Lines: []entity.DispatchLine{{ItemID: "i2", Quantity: 2}}},
	}
	for _, m := range movs {
		require.NoError(t, store.Movements().Create(ctx, m))
	}
	return store
}

func newDashboard(store *memory.Store) *analytics.DashboardUseCase {
	return analytics.NewDashboardUseCase(store.Items(), store.Movements(), time.UTC).
		WithClock(func() time.Time { return now })
}

func TestGetSummary(t *testing.T) {
	uc := newDashboard(seedInventory(t))

	got, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 160, got.TotalItems)
	assert.Equal(t, 110, got.InStock)
	assert.Equal(t, 50, got.Out)
	assert.Equal(t, 2, got.ActiveRentals)
	assert.Equal(t, 1, got.OverdueReturns)
	require.Len(t, got.RecentMovements, 4)
	assert.Equal(t, "m1", got.RecentMovements[0].ID)
	assert.True(t, got.RecentMovements[0].Overdue)
	assert.Equal(t, 40, got.RecentMovements[0].TotalOut)
}

func TestReport_Month(t *testing.T) {
	uc := newDashboard(seedInventory(t))

	rep, err := uc.Report(context.Background(), analytics.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), rep.Start)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), rep.End)
	assert.Equal(t, 31, rep.Utilization)
	assert.Equal(t, 2, rep.TotalDispatches)
	assert.Equal(t, 1, rep.CompletedReturns)
	assert.Equal(t, 2, rep.ActiveRentals)
	assert.Equal(t, 1, rep.OverdueReturns)

	require.Len(t, rep.Stores, 2)
	assert.Equal(t, "BOBA", rep.Stores[0].Store)
	assert.Equal(t, 2, rep.Stores[0].Items)
	assert.Equal(t, 110, rep.Stores[0].Quantity)
	assert.Equal(t, 60, rep.Stores[0].InStock)
	assert.Equal(t, 50, rep.Stores[1].Quantity)

	require.Len(t, rep.Trend, 7)
	assert.Equal(t, "Sep 2024", rep.Trend[0].Label)
	assert.Equal(t, "Dec 2024", rep.Trend[3].Label)
	assert.Equal(t, 1, rep.Trend[3].Dispatches)
	assert.Equal(t, 1, rep.Trend[3].Returns)
	assert.Equal(t, 1, rep.Trend[4].Dispatches)
	assert.Equal(t, 0, rep.Trend[4].Returns)
	assert.Equal(t, "Mar 2025", rep.Trend[6].Label)
	assert.Equal(t, 2, rep.Trend[6].Dispatches)

	require.Len(t, rep.Types, 2)
	assert.Equal(t, "Chairs", rep.Types[0].Type)
	assert.Equal(t, 110, rep.Types[0].Quantity)
	assert.Equal(t, "Other", rep.Types[1].Type)
	assert.Equal(t, 50, rep.Types[1].Quantity)
}

func TestReport_Week(t *testing.T) {
	uc := newDashboard(seedInventory(t))

	rep, err := uc.Report(context.Background(), analytics.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), rep.Start)
	assert.Equal(t, 1, rep.TotalDispatches)
	assert.Equal(t, 0, rep.CompletedReturns)

	require.Len(t, rep.Trend, 7)
	assert.Equal(t, "Mar 09", rep.Trend[6].Label)
	assert.Equal(t, 1, rep.Trend[6].Dispatches)
	assert.Equal(t, "Mar 02", rep.Trend[5].Label)
	assert.Equal(t, 1, rep.Trend[5].Returns)
}

func TestReport_QuarterYear(t *testing.T) {
	uc := newDashboard(seedInventory(t))
	ctx := context.Background()

	q, err := uc.Report(ctx, analytics.PeriodQuarter)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), q.Start)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), q.End)
	assert.Equal(t, 3, q.TotalDispatches)

	y, err := uc.Report(ctx, analytics.PeriodYear)
	require.NoError(t, err)
	assert.Equal(t, 3, y.TotalDispatches)
	assert.Equal(t, 1, y.CompletedReturns)
}

func TestReport_SinArticulos(t *testing.T) {
	uc := newDashboard(memory.NewStore())
	rep, err := uc.Report(context.Background(), analytics.PeriodMonth)
	require.NoError(t, err)
	assert.Zero(t, rep.Utilization)
	assert.Empty(t, rep.Types)
}

func TestParsePeriod(t *testing.T) {
	p, err := analytics.ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, analytics.PeriodMonth, p)

	p, err = analytics.ParsePeriod(" quarter ")
	require.NoError(t, err)
	assert.Equal(t, analytics.PeriodQuarter, p)

	_, err = analytics.ParsePeriod("DECADE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummaries(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	d := decimal.NewFromInt

	invoices := []*entity.Invoice{
		{ID: "f1", InvoiceNumber: "WGS-2025-001", Status: entity.InvoiceStatusPaid, Total: d(236000)},
		{ID: "f2", InvoiceNumber: "WGS-2025-002", Status: entity.InvoiceStatusOverdue, Total: d(50000)},
		{ID: "f3", InvoiceNumber: "WGS-2025-003", Status: entity.InvoiceStatusDraft, Total: d(1000)},
	}
	for _, i := range invoices {
		require.NoError(t, store.Invoices().Create(ctx, i))
	}
	txs := []*entity.Transaction{
		{ID: "t1", Type: entity.TransactionIncome, Amount: d(300000), Date: now},
		{ID: "t2", Type: entity.TransactionExpense, Amount: d(120000), Date: now},
	}
	for _, tx := range txs {
		require.NoError(t, store.Transactions().Create(ctx, tx))
	}
	bookings := []*entity.Booking{
		{ID: "b1", EventType: entity.EventWedding, Status: entity.BookingConfirmed, Amount: d(1000), IsPaid: true, EventDate: now},
		{ID: "b2", EventType: entity.EventWedding, Status: entity.BookingPending, Amount: d(400), EventDate: now},
		{ID: "b3", EventType: entity.EventCorporate, Status: entity.BookingCancelled, Amount: d(999), EventDate: now},
		{ID: "b4", EventType: entity.EventSendoff, Status: entity.BookingCompleted, Amount: d(250), IsPaid: true, EventDate: now},
	}
	for _, b := range bookings {
		require.NoError(t, store.Bookings().Create(ctx, b))
	}
	employees := []*entity.Employee{
		{ID: "e1", Gender: entity.GenderMale, IsActive: true},
		{ID: "e2", Gender: entity.GenderFemale, IsActive: true},
		{ID: "e3", Gender: entity.GenderFemale, IsActive: false},
	}
	for _, e := range employees {
		require.NoError(t, store.Employees().Create(ctx, e))
	}

	uc := analytics.NewSummaryUseCase(store.Invoices(), store.Transactions(), store.Bookings(), store.Employees())

	fin, err := uc.Finance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, fin.TotalInvoices)
	assert.Equal(t, 1, fin.PaidInvoices)
	assert.Equal(t, 1, fin.OverdueInvoices)
	assert.True(t, d(236000).Equal(fin.TotalRevenue))
	assert.True(t, d(180000).Equal(fin.NetProfit))

	bk, err := uc.Bookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, bk.Total)
	assert.Equal(t, 1, bk.Confirmed)
	assert.Equal(t, 1, bk.Pending)
	assert.Equal(t, 1, bk.Completed)
	assert.True(t, d(1250).Equal(bk.TotalRevenue))
	assert.True(t, d(400).Equal(bk.PendingPayments))
	assert.Equal(t, 2, bk.ByEventType["WEDDING"])
	assert.Equal(t, 0, bk.ByEventType["RENTALS"])

	hr, err := uc.HR(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, hr.Total)
	assert.Equal(t, 2, hr.Active)
	assert.Equal(t, 1, hr.Inactive)
	assert.Equal(t, 1, hr.Male)
	assert.Equal(t, 2, hr.Female)
}
