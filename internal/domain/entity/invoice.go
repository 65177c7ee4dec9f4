package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de cobro de una factura.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusOverdue   InvoiceStatus = "OVERDUE"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Valid informa si s es un estado conocido.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// InvoicePrefix prefijo de la numeración de facturas (WGS-<año>-<NNN>).
const InvoicePrefix = "WGS"

// DefaultTaxRate IVA por defecto (porcentaje).
var DefaultTaxRate = decimal.NewFromInt(18)

// InvoiceItem línea de factura. Total = Quantity * UnitPrice.
type InvoiceItem struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Total       decimal.Decimal
}

// Invoice cabecera y líneas de una factura a cliente.
type Invoice struct {
	ID              string
	InvoiceNumber   string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Items           []InvoiceItem
	Subtotal        decimal.Decimal
	TaxRate         decimal.Decimal // porcentaje, ej. 18
	TaxAmount       decimal.Decimal
	Total           decimal.Decimal
	Status          InvoiceStatus
	IssueDate       time.Time
	DueDate         time.Time
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Recalculate recalcula totales de línea, subtotal, impuesto y total.
func (inv *Invoice) Recalculate() {
	hundred := decimal.NewFromInt(100)
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Total = inv.Items[i].Quantity.Mul(inv.Items[i].UnitPrice)
		subtotal = subtotal.Add(inv.Items[i].Total)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(inv.TaxRate).Div(hundred).Round(2)
	inv.Total = inv.Subtotal.Add(inv.TaxAmount)
}
