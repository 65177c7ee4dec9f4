package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/textmatch"
)

var _ repository.BookingRepository = (*BookingRepo)(nil)

type BookingRepo struct {
	db access
}

func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.bookings[b.ID]; ok {
			return domain.ErrDuplicate
		}
		s.bookings[b.ID] = *b
		return nil
	})
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	var out *entity.Booking
	err := r.db.read(ctx, func(s *state) error {
		if b, ok := s.bookings[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r *BookingRepo) Update(ctx context.Context, b *entity.Booking) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.bookings[b.ID]; !ok {
			return domain.ErrNotFound
		}
		s.bookings[b.ID] = *b
		return nil
	})
}

func (r *BookingRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.bookings[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.bookings, id)
		return nil
	})
}

// List ordena por fecha del evento, la más próxima primero.
func (r *BookingRepo) List(ctx context.Context, f repository.BookingFilter) ([]*entity.Booking, error) {
	var out []*entity.Booking
	err := r.db.read(ctx, func(s *state) error {
		for _, b := range s.bookings {
			if f.Status != "" && b.Status != f.Status {
				continue
			}
			if f.EventType != "" && b.EventType != f.EventType {
				continue
			}
			if !textmatch.AnyContains(f.Search, b.CustomerName, b.Venue) {
				continue
			}
			b := b
			out = append(out, &b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, err
}
