package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemDTO línea de factura. Total se recalcula siempre en el servidor.
type InvoiceItemDTO struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// CreateInvoiceRequest el número WGS-<año>-<NNN> lo asigna el servicio.
type CreateInvoiceRequest struct {
	CustomerName    string           `json:"customer_name"`
	CustomerEmail   string           `json:"customer_email,omitempty"`
	CustomerPhone   string           `json:"customer_phone,omitempty"`
	CustomerAddress string           `json:"customer_address,omitempty"`
	Items           []InvoiceItemDTO `json:"items"`
	TaxRate         *decimal.Decimal `json:"tax_rate,omitempty"`
	Status          string           `json:"status,omitempty"`
	IssueDate       *time.Time       `json:"issue_date,omitempty"`
	DueDate         time.Time        `json:"due_date"`
	Notes           string           `json:"notes,omitempty"`
}

type UpdateInvoiceRequest struct {
	CustomerName    *string          `json:"customer_name"`
	CustomerEmail   *string          `json:"customer_email"`
	CustomerPhone   *string          `json:"customer_phone"`
	CustomerAddress *string          `json:"customer_address"`
	Items           []InvoiceItemDTO `json:"items"` // nil no cambia las líneas
	TaxRate         *decimal.Decimal `json:"tax_rate"`
	Status          *string          `json:"status"`
	IssueDate       *time.Time       `json:"issue_date"`
	DueDate         *time.Time       `json:"due_date"`
	Notes           *string          `json:"notes"`
}

type InvoiceResponse struct {
	ID              string           `json:"id"`
	InvoiceNumber   string           `json:"invoice_number"`
	CustomerName    string           `json:"customer_name"`
	CustomerEmail   string           `json:"customer_email,omitempty"`
	CustomerPhone   string           `json:"customer_phone,omitempty"`
	CustomerAddress string           `json:"customer_address,omitempty"`
	Items           []InvoiceItemDTO `json:"items"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	TaxRate         decimal.Decimal  `json:"tax_rate"`
	TaxAmount       decimal.Decimal  `json:"tax_amount"`
	Total           decimal.Decimal  `json:"total"`
	Status          string           `json:"status"`
	IssueDate       time.Time        `json:"issue_date"`
	DueDate         time.Time        `json:"due_date"`
	Notes           string           `json:"notes,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type InvoiceListQuery struct {
	Status string `query:"status"`
	Search string `query:"search"`
}

type CreateTransactionRequest struct {
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Date        *time.Time      `json:"date,omitempty"`
}

type UpdateTransactionRequest struct {
	Type        *string          `json:"type"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Reference   *string          `json:"reference"`
	Date        *time.Time       `json:"date"`
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

type TransactionListQuery struct {
	Type   string `query:"type"`
	Search string `query:"search"`
}
