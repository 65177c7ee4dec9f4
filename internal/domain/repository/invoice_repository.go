package repository

import (
	"context"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

type InvoiceFilter struct {
	Status entity.InvoiceStatus
	Search string // número o cliente
}

// InvoiceRepository define el puerto de persistencia para Invoice (cabecera y líneas juntas).
type InvoiceRepository interface {
	Create(ctx context.Context, inv *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	Update(ctx context.Context, inv *entity.Invoice) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f InvoiceFilter) ([]*entity.Invoice, error)
	// MaxNumberSuffix mayor sufijo numérico entre los números que empiezan por prefix; 0 si no hay.
	MaxNumberSuffix(ctx context.Context, prefix string) (int, error)
}
