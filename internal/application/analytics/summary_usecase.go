package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

// SummaryUseCase tarjetas de resumen de finanzas, eventos y personal.
type SummaryUseCase struct {
	invoices     repository.InvoiceRepository
	transactions repository.TransactionRepository
	bookings     repository.BookingRepository
	employees    repository.EmployeeRepository
}

func NewSummaryUseCase(
	invoices repository.InvoiceRepository,
	transactions repository.TransactionRepository,
	bookings repository.BookingRepository,
	employees repository.EmployeeRepository,
) *SummaryUseCase {
	return &SummaryUseCase{invoices: invoices, transactions: transactions, bookings: bookings, employees: employees}
}

// Finance facturas y movimientos de caja. NetProfit = ingresos - egresos.
func (uc *SummaryUseCase) Finance(ctx context.Context) (*dto.FinanceSummaryDTO, error) {
	type invoicesResult struct {
		list []*entity.Invoice
		err  error
	}
	invCh := make(chan invoicesResult, 1)
	go func() {
		list, err := uc.invoices.List(ctx, repository.InvoiceFilter{})
		invCh <- invoicesResult{list, err}
	}()
	txs, txErr := uc.transactions.List(ctx, repository.TransactionFilter{})
	inv := <-invCh

	if inv.err != nil {
		return nil, fmt.Errorf("finanzas: facturas: %w", inv.err)
	}
	if txErr != nil {
		return nil, fmt.Errorf("finanzas: transacciones: %w", txErr)
	}

	out := &dto.FinanceSummaryDTO{
		TotalInvoices: len(inv.list),
		TotalRevenue:  decimal.Zero,
		TotalIncome:   decimal.Zero,
		TotalExpense:  decimal.Zero,
	}
	for _, i := range inv.list {
		switch i.Status {
		case entity.InvoiceStatusPaid:
			out.PaidInvoices++
			out.TotalRevenue = out.TotalRevenue.Add(i.Total)
		case entity.InvoiceStatusOverdue:
			out.OverdueInvoices++
		}
	}
	for _, t := range txs {
		if t.Type == entity.TransactionIncome {
			out.TotalIncome = out.TotalIncome.Add(t.Amount)
		} else {
			out.TotalExpense = out.TotalExpense.Add(t.Amount)
		}
	}
	out.NetProfit = out.TotalIncome.Sub(out.TotalExpense)
	return out, nil
}

// Bookings conteos por estado y tipo; montos excluyen reservas canceladas.
func (uc *SummaryUseCase) Bookings(ctx context.Context) (*dto.BookingSummaryDTO, error) {
	list, err := uc.bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, fmt.Errorf("eventos: %w", err)
	}
	out := &dto.BookingSummaryDTO{
		Total:           len(list),
		TotalRevenue:    decimal.Zero,
		PendingPayments: decimal.Zero,
		ByEventType:     make(map[string]int, len(entity.EventTypes())),
	}
	for _, t := range entity.EventTypes() {
		out.ByEventType[string(t)] = 0
	}
	for _, b := range list {
		switch b.Status {
		case entity.BookingConfirmed:
			out.Confirmed++
		case entity.BookingPending:
			out.Pending++
		case entity.BookingCompleted:
			out.Completed++
		}
		out.ByEventType[string(b.EventType)]++
		if b.Status == entity.BookingCancelled {
			continue
		}
		if b.IsPaid {
			out.TotalRevenue = out.TotalRevenue.Add(b.Amount)
		} else {
			out.PendingPayments = out.PendingPayments.Add(b.Amount)
		}
	}
	return out, nil
}

func (uc *SummaryUseCase) HR(ctx context.Context) (*dto.HRSummaryDTO, error) {
	list, err := uc.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("personal: %w", err)
	}
	out := &dto.HRSummaryDTO{Total: len(list)}
	for _, e := range list {
		if e.IsActive {
			out.Active++
		} else {
			out.Inactive++
		}
		switch e.Gender {
		case entity.GenderMale:
			out.Male++
		case entity.GenderFemale:
			out.Female++
		}
	}
	return out, nil
}
