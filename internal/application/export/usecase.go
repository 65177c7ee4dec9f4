// Package export arma los libros xlsx y los PDF (nota de despacho y factura).
package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/wegesa-api/internal/application/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	rules "github.com/jhoicas/wegesa-api/internal/domain/ledger"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

// Dataset conjunto exportable.
type Dataset string

const (
	DatasetInventory    Dataset = "inventory"
	DatasetMovements    Dataset = "movements"
	DatasetInvoices     Dataset = "invoices"
	DatasetTransactions Dataset = "transactions"
	DatasetBookings     Dataset = "bookings"
	DatasetEmployees    Dataset = "employees"
)

// ParseDataset acepta el nombre con o sin extensión .xlsx.
func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), ".xlsx"))
	switch d {
	case DatasetInventory, DatasetMovements, DatasetInvoices, DatasetTransactions, DatasetBookings, DatasetEmployees:
		return d, nil
	}
	return "", fmt.Errorf("%w: dataset desconocido %q", domain.ErrNotFound, s)
}

// Finance informa si el dataset exige además view_finance.
func (d Dataset) Finance() bool {
	return d == DatasetInvoices || d == DatasetTransactions
}

// Repos fuentes de lectura de las exportaciones.
type Repos struct {
	Items        repository.ItemRepository
	Movements    repository.MovementRepository
	Returns      repository.ReturnRepository
	Users        repository.UserRepository
	Invoices     repository.InvoiceRepository
	Transactions repository.TransactionRepository
	Bookings     repository.BookingRepository
	Employees    repository.EmployeeRepository
}

// UseCase exportaciones. Ledger aporta el detalle del movimiento con saldos.
type UseCase struct {
	repos    Repos
	ledger   *ledger.UseCase
	sheets   SheetWriter
	renderer DocumentRenderer
}

func NewUseCase(repos Repos, ledgerUC *ledger.UseCase, sheets SheetWriter, renderer DocumentRenderer) *UseCase {
	return &UseCase{repos: repos, ledger: ledgerUC, sheets: sheets, renderer: renderer}
}

// Spreadsheet devuelve el libro y el nombre de archivo sugerido.
func (uc *UseCase) Spreadsheet(ctx context.Context, d Dataset) ([]byte, string, error) {
	sheet, err := uc.buildSheet(ctx, d)
	if err != nil {
		return nil, "", fmt.Errorf("export %s: %w", d, err)
	}
	data, err := uc.sheets.Write(ctx, *sheet)
	if err != nil {
		return nil, "", fmt.Errorf("export %s: %w", d, err)
	}
	return data, fmt.Sprintf("wegesa_%s.xlsx", d), nil
}

// DispatchNotePDF nota de despacho con lo devuelto y lo pendiente por línea.
func (uc *UseCase) DispatchNotePDF(ctx context.Context, movementID string) ([]byte, string, error) {
	detail, err := uc.ledger.LoadMovement(ctx, movementID)
	if err != nil {
		return nil, "", err
	}
	note := &DispatchNote{
		Movement:     detail.Movement,
		Lines:        noteLines(detail),
		AuthorizedBy: uc.userName(ctx, detail.Movement.AuthorizedByUserID),
		IssuedBy:     uc.userName(ctx, detail.Movement.IssuedByUserID),
		Returns:      len(detail.Returns),
	}
	data, err := uc.renderer.DispatchNotePDF(ctx, note)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return data, fmt.Sprintf("despacho_%s.pdf", shortID(movementID)), nil
}

// InvoicePDF documento de la factura.
func (uc *UseCase) InvoicePDF(ctx context.Context, invoiceID string) ([]byte, string, error) {
	inv, err := uc.repos.Invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	data, err := uc.renderer.InvoicePDF(ctx, inv)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return data, fmt.Sprintf("factura_%s.pdf", inv.InvoiceNumber), nil
}

func noteLines(d *ledger.MovementDetail) []NoteLine {
	out := make([]NoteLine, 0, len(d.Balances))
	for _, b := range d.Balances {
		out = append(out, NoteLine{
			ItemID:      b.ItemID,
			ItemName:    ledger.ItemName(d.Items, b.ItemID),
			Dispatched:  b.Dispatched,
			Returned:    b.Returned,
			Outstanding: b.Outstanding,
		})
	}
	return out
}

// userName nombre para imprimir; un usuario borrado se muestra por id.
func (uc *UseCase) userName(ctx context.Context, id string) string {
	u, err := uc.repos.Users.GetByID(ctx, id)
	if err != nil || u == nil {
		return id
	}
	return u.Name
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (uc *UseCase) buildSheet(ctx context.Context, d Dataset) (*Sheet, error) {
	switch d {
	case DatasetInventory:
		return uc.inventorySheet(ctx)
	case DatasetMovements:
		return uc.movementsSheet(ctx)
	case DatasetInvoices:
		return uc.invoicesSheet(ctx)
	case DatasetTransactions:
		return uc.transactionsSheet(ctx)
	case DatasetBookings:
		return uc.bookingsSheet(ctx)
	case DatasetEmployees:
		return uc.employeesSheet(ctx)
	}
	return nil, domain.ErrNotFound
}

func (uc *UseCase) inventorySheet(ctx context.Context) (*Sheet, error) {
	items, err := uc.repos.Items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	s := &Sheet{
		Name:    "Inventory",
		Headers: []string{"Item Name", "Brand", "Type", "Total Quantity", "In Stock", "Out", "Store", "Date of Entry"},
	}
	for _, it := range items {
		s.Rows = append(s.Rows, []any{it.Name, it.Brand, it.Type, it.Quantity, it.InStock, it.Out(), it.Store.DisplayName(), it.DateOfEntry})
	}
	return s, nil
}

func (uc *UseCase) movementsSheet(ctx context.Context) (*Sheet, error) {
	movs, err := uc.repos.Movements.List(ctx, repository.MovementFilter{})
	if err != nil {
		return nil, err
	}
	recs, err := uc.repos.Returns.List(ctx)
	if err != nil {
		return nil, err
	}
	byMovement := make(map[string][]*entity.ReturnRecord)
	for _, r := range recs {
		byMovement[r.MovementID] = append(byMovement[r.MovementID], r)
	}
	s := &Sheet{
		Name:    "Movements",
		Headers: []string{"ID", "Date", "Store", "Customer", "Responsible", "Location", "Items Out", "Returned", "Status", "Expected Return"},
	}
	for _, m := range movs {
		s.Rows = append(s.Rows, []any{
			m.ID, m.CreatedAt, m.Store.DisplayName(), m.CustomerName, m.ResponsiblePerson, m.UseLocation,
			m.TotalOut(), rules.TotalReturned(byMovement[m.ID]), string(m.Status), m.ExpectedReturnAt,
		})
	}
	return s, nil
}

func (uc *UseCase) invoicesSheet(ctx context.Context) (*Sheet, error) {
	list, err := uc.repos.Invoices.List(ctx, repository.InvoiceFilter{})
	if err != nil {
		return nil, err
	}
	s := &Sheet{
		Name:    "Invoices",
		Headers: []string{"Invoice #", "Customer", "Issue Date", "Due Date", "Subtotal", "Tax Rate", "Tax", "Total", "Status"},
	}
	for _, i := range list {
		s.Rows = append(s.Rows, []any{i.InvoiceNumber, i.CustomerName, i.IssueDate, i.DueDate, i.Subtotal, i.TaxRate, i.TaxAmount, i.Total, string(i.Status)})
	}
	return s, nil
}

func (uc *UseCase) transactionsSheet(ctx context.Context) (*Sheet, error) {
	list, err := uc.repos.Transactions.List(ctx, repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	s := &Sheet{
		Name:    "Transactions",
		Headers: []string{"Date", "Type", "Description", "Category", "Reference", "Amount"},
	}
	for _, t := range list {
		s.Rows = append(s.Rows, []any{t.Date, string(t.Type), t.Description, t.Category, t.Reference, t.Amount})
	}
	return s, nil
}

func (uc *UseCase) bookingsSheet(ctx context.Context) (*Sheet, error) {
	list, err := uc.repos.Bookings.List(ctx, repository.BookingFilter{})
	if err != nil {
		return nil, err
	}
	s := &Sheet{
		Name:    "Bookings",
		Headers: []string{"Customer", "Phone", "Event Date", "Event Type", "Venue", "Amount", "Paid", "Status"},
	}
	for _, b := range list {
		s.Rows = append(s.Rows, []any{b.CustomerName, b.CustomerPhone, b.EventDate, string(b.EventType), b.Venue, b.Amount, b.IsPaid, string(b.Status)})
	}
	return s, nil
}

func (uc *UseCase) employeesSheet(ctx context.Context) (*Sheet, error) {
	list, err := uc.repos.Employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, err
	}
	s := &Sheet{
		Name:    "Employees",
		Headers: []string{"Full Name", "Gender", "Position", "Mobile", "Date of Birth", "Contract Start", "Contract End", "Active"},
	}
	for _, e := range list {
		s.Rows = append(s.Rows, []any{e.FullName, string(e.Gender), e.Position, e.MobileContact, e.DateOfBirth, e.ContractStartDate, e.ContractEndDate, e.IsActive})
	}
	return s, nil
}
