package repository

import (
	"context"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

// ItemFilter filtros de listado de artículos. Campos vacíos no filtran.
type ItemFilter struct {
	Store  entity.StoreID
	Type   string
	Search string // nombre, marca o tipo
}

// ItemRepository define el puerto de persistencia para Item.
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate bloquea el artículo hasta el fin de la unidad de trabajo (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ItemFilter) ([]*entity.Item, error)
}
