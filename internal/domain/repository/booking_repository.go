package repository

import (
	"context"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

type BookingFilter struct {
	Status    entity.BookingStatus
	EventType entity.EventType
	Search    string // cliente o lugar
}

// BookingRepository define el puerto de persistencia para Booking.
type BookingRepository interface {
	Create(ctx context.Context, b *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	Update(ctx context.Context, b *entity.Booking) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f BookingFilter) ([]*entity.Booking, error)
}
