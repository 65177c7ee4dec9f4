package dto

import "github.com/shopspring/decimal"

// FinanceSummaryDTO respuesta de GET /api/finance/summary.
type FinanceSummaryDTO struct {
	TotalInvoices   int             `json:"total_invoices"`
	PaidInvoices    int             `json:"paid_invoices"`
	OverdueInvoices int             `json:"overdue_invoices"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"` // Σ total de facturas PAID
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpense    decimal.Decimal `json:"total_expense"`
	NetProfit       decimal.Decimal `json:"net_profit"`
}

// BookingSummaryDTO respuesta de GET /api/bookings/summary.
type BookingSummaryDTO struct {
	Total           int             `json:"total"`
	Confirmed       int             `json:"confirmed"`
	Pending         int             `json:"pending"`
	Completed       int             `json:"completed"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`    // pagadas y no canceladas
	PendingPayments decimal.Decimal `json:"pending_payments"` // sin pagar y no canceladas
	ByEventType     map[string]int  `json:"by_event_type"`
}

// HRSummaryDTO respuesta de GET /api/employees/summary.
type HRSummaryDTO struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Male     int `json:"male"`
	Female   int `json:"female"`
}
