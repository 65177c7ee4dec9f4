package repository

import (
	"context"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

// MovementFilter filtros de listado de movimientos.
type MovementFilter struct {
	Store  entity.StoreID
	Status entity.MovementStatus
	Search string // cliente, responsable o lugar de uso
}

// MovementRepository define el puerto de persistencia para Movement.
// Las líneas se guardan al crear y no se modifican; solo cambia el estado.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	UpdateStatus(ctx context.Context, id string, status entity.MovementStatus) error
	// List devuelve los movimientos del más reciente al más antiguo.
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, error)
}

// ReturnRepository persistencia de registros de devolución (solo inserción).
type ReturnRepository interface {
	Create(ctx context.Context, r *entity.ReturnRecord) error
	// ListByMovement en orden cronológico.
	ListByMovement(ctx context.Context, movementID string) ([]*entity.ReturnRecord, error)
	List(ctx context.Context) ([]*entity.ReturnRecord, error)
}
