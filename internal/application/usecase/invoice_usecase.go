package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

// numberAttempts reintentos si otro alta tomó el mismo número.
const numberAttempts = 3

// InvoiceUseCase facturas a clientes: numeración WGS-<año>-<NNN> y totales recalculados.
type InvoiceUseCase struct {
	repo repository.InvoiceRepository
	now  func() time.Time
}

func NewInvoiceUseCase(repo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// NextNumber siguiente número del año: mayor sufijo WGS-<año>-NNN en uso + 1, con tres dígitos.
// Los números de facturas eliminadas no se reutilizan salvo que fueran los últimos.
func (uc *InvoiceUseCase) NextNumber(ctx context.Context, year int) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", entity.InvoicePrefix, year)
	n, err := uc.repo.MaxNumberSuffix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%03d", prefix, n+1), nil
}

func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := uc.now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerEmail:   strings.TrimSpace(in.CustomerEmail),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		Items:           toInvoiceItems(in.Items),
		TaxRate:         entity.DefaultTaxRate,
		Status:          entity.InvoiceStatusDraft,
		IssueDate:       now,
		DueDate:         in.DueDate,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if in.TaxRate != nil {
		inv.TaxRate = *in.TaxRate
	}
	if in.Status != "" {
		inv.Status = entity.InvoiceStatus(upper(in.Status))
	}
	if in.IssueDate != nil {
		inv.IssueDate = *in.IssueDate
	}
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}
	inv.Recalculate()

	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		inv.InvoiceNumber, err = uc.NextNumber(ctx, now.Year())
		if err != nil {
			return nil, err
		}
		err = uc.repo.Create(ctx, inv)
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Get devuelve la entidad (para el PDF).
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (uc *InvoiceUseCase) GetByID(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// Update aplica el parche y recalcula totales. El número no cambia.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.CustomerName != nil {
		inv.CustomerName = strings.TrimSpace(*in.CustomerName)
	}
	if in.CustomerEmail != nil {
		inv.CustomerEmail = strings.TrimSpace(*in.CustomerEmail)
	}
	if in.CustomerPhone != nil {
		inv.CustomerPhone = strings.TrimSpace(*in.CustomerPhone)
	}
	if in.CustomerAddress != nil {
		inv.CustomerAddress = strings.TrimSpace(*in.CustomerAddress)
	}
	if in.Items != nil {
		inv.Items = toInvoiceItems(in.Items)
	}
	if in.TaxRate != nil {
		inv.TaxRate = *in.TaxRate
	}
	if in.Status != nil {
		inv.Status = entity.InvoiceStatus(upper(*in.Status))
	}
	if in.IssueDate != nil {
		inv.IssueDate = *in.IssueDate
	}
	if in.DueDate != nil {
		inv.DueDate = *in.DueDate
	}
	if in.Notes != nil {
		inv.Notes = *in.Notes
	}
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}
	inv.Recalculate()
	inv.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, inv); err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *InvoiceUseCase) List(ctx context.Context, q dto.InvoiceListQuery) ([]dto.InvoiceResponse, error) {
	f := repository.InvoiceFilter{Status: entity.InvoiceStatus(upper(q.Status)), Search: q.Search}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("estado desconocido %q", q.Status)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, *ToInvoiceResponse(inv))
	}
	return out, nil
}

func validateInvoice(inv *entity.Invoice) error {
	if inv.CustomerName == "" {
		return domain.Invalid("customer_name requerido")
	}
	if err := validEmail(inv.CustomerEmail, true); err != nil {
		return err
	}
	if len(inv.Items) == 0 {
		return domain.Invalid("la factura requiere al menos una línea")
	}
	for i, it := range inv.Items {
		if strings.TrimSpace(it.Description) == "" {
			return domain.Invalid("línea %d: description requerido", i+1)
		}
		if !it.Quantity.IsPositive() {
			return domain.Invalid("línea %d: quantity debe ser mayor que cero", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return domain.Invalid("línea %d: unit_price no puede ser negativo", i+1)
		}
	}
	if inv.TaxRate.IsNegative() || inv.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return domain.Invalid("tax_rate fuera de rango")
	}
	if !inv.Status.Valid() {
		return domain.Invalid("estado desconocido %q", inv.Status)
	}
	if inv.DueDate.IsZero() {
		return domain.Invalid("due_date requerido")
	}
	if inv.DueDate.Before(inv.IssueDate.Truncate(24 * time.Hour)) {
		return domain.Invalid("due_date anterior a issue_date")
	}
	return nil
}

func toInvoiceItems(in []dto.InvoiceItemDTO) []entity.InvoiceItem {
	out := make([]entity.InvoiceItem, 0, len(in))
	for _, it := range in {
		out = append(out, entity.InvoiceItem{Description: strings.TrimSpace(it.Description), Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return out
}

// ToInvoiceResponse convierte la entidad a DTO.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	items := make([]dto.InvoiceItemDTO, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, dto.InvoiceItemDTO{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Total: it.Total})
	}
	return &dto.InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerName:    inv.CustomerName,
		CustomerEmail:   inv.CustomerEmail,
		CustomerPhone:   inv.CustomerPhone,
		CustomerAddress: inv.CustomerAddress,
		Items:           items,
		Subtotal:        inv.Subtotal,
		TaxRate:         inv.TaxRate,
		TaxAmount:       inv.TaxAmount,
		Total:           inv.Total,
		Status:          string(inv.Status),
		IssueDate:       inv.IssueDate,
		DueDate:         inv.DueDate,
		Notes:           inv.Notes,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}
