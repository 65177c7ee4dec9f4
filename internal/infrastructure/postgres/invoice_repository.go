package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepository)(nil)

// InvoiceRepository guarda la cabecera en columnas y las líneas como JSONB.
type InvoiceRepository struct {
	db Querier
}

func NewInvoiceRepository(db Querier) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

// invoiceLine forma de cada línea dentro de invoices.items.
type invoiceLine struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

const invoiceColumns = `id, invoice_number, customer_name, customer_email, customer_phone, customer_address,
	items, subtotal, tax_rate, tax_amount, total, status, issue_date, due_date, notes, created_at, updated_at`

func (r *InvoiceRepository) Create(ctx context.Context, inv *entity.Invoice) error {
	items, err := marshalInvoiceLines(inv.Items)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		inv.ID, inv.InvoiceNumber, inv.CustomerName,
		nullIfEmpty(inv.CustomerEmail), nullIfEmpty(inv.CustomerPhone), nullIfEmpty(inv.CustomerAddress),
		items, inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total, string(inv.Status),
		inv.IssueDate, inv.DueDate, nullIfEmpty(inv.Notes), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *entity.Invoice) error {
	items, err := marshalInvoiceLines(inv.Items)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET invoice_number = $2, customer_name = $3, customer_email = $4, customer_phone = $5, customer_address = $6,
		    items = $7, subtotal = $8, tax_rate = $9, tax_amount = $10, total = $11, status = $12,
		    issue_date = $13, due_date = $14, notes = $15, updated_at = $16
		WHERE id = $1`,
		inv.ID, inv.InvoiceNumber, inv.CustomerName,
		nullIfEmpty(inv.CustomerEmail), nullIfEmpty(inv.CustomerPhone), nullIfEmpty(inv.CustomerAddress),
		items, inv.Subtotal, inv.TaxRate, inv.TaxAmount, inv.Total, string(inv.Status),
		inv.IssueDate, inv.DueDate, nullIfEmpty(inv.Notes), inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *InvoiceRepository) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.Invoice, error) {
	var w filter
	if f.Status != "" {
		w.eq("status", string(f.Status))
	}
	w.search(f.Search, "invoice_number", "customer_name")

	rows, err := r.db.Query(ctx, `SELECT `+invoiceColumns+` FROM invoices`+w.where()+` ORDER BY issue_date DESC, invoice_number DESC`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// MaxNumberSuffix solo considera sufijos numéricos (WGS-2026-007 -> 7).
func (r *InvoiceRepository) MaxNumberSuffix(ctx context.Context, prefix string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(MAX(substring(invoice_number FROM char_length($1) + 1)::integer), 0)
		FROM invoices
		WHERE invoice_number LIKE $2
		  AND substring(invoice_number FROM char_length($1) + 1) ~ '^[0-9]+$'`,
		prefix, escapeLike(prefix)+"%").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("max invoice number: %w", err)
	}
	return n, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var email, phone, address, notes *string
	var items []byte
	var status string
	if err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.CustomerName, &email, &phone, &address,
		&items, &inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.Total, &status,
		&inv.IssueDate, &inv.DueDate, &notes, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
		return nil, err
	}
	inv.CustomerEmail = stringOrEmpty(email)
	inv.CustomerPhone = stringOrEmpty(phone)
	inv.CustomerAddress = stringOrEmpty(address)
	inv.Notes = stringOrEmpty(notes)
	inv.Status = entity.InvoiceStatus(status)

	var lines []invoiceLine
	if err := json.Unmarshal(items, &lines); err != nil {
		return nil, fmt.Errorf("decode invoice items: %w", err)
	}
	inv.Items = make([]entity.InvoiceItem, 0, len(lines))
	for _, l := range lines {
		inv.Items = append(inv.Items, entity.InvoiceItem{Description: l.Description, Quantity: l.Quantity, UnitPrice: l.UnitPrice, Total: l.Total})
	}
	return &inv, nil
}

func marshalInvoiceLines(items []entity.InvoiceItem) ([]byte, error) {
	lines := make([]invoiceLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, invoiceLine{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Total: it.Total})
	}
	b, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encode invoice items: %w", err)
	}
	return b, nil
}
