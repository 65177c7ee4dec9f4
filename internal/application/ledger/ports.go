package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad de trabajo, pasando repositorios atados a ella.
// Si fn devuelve error no se aplica ninguna escritura.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		items repository.ItemRepository,
		movements repository.MovementRepository,
		returns repository.ReturnRepository,
	) error) error
}

// EventType nombre del evento de dominio publicado tras el commit.
type EventType string

const (
	EventDispatchCreated  EventType = "DispatchCreated"
	EventReturnRegistered EventType = "ReturnRegistered"
)

// Event evento del libro de inventario.
type Event struct {
	ID         string                `json:"id"`
	Type       EventType             `json:"type"`
	OccurredAt time.Time             `json:"occurred_at"`
	MovementID string                `json:"movement_id"`
	ReturnID   string                `json:"return_id,omitempty"`
	Store      entity.StoreID        `json:"store"`
	Status     entity.MovementStatus `json:"status"`
	UserID     string                `json:"user_id"`
	Lines      []EventLine           `json:"lines"`
}

type EventLine struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// EventPublisher publica eventos del libro (Kafka o log).
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
