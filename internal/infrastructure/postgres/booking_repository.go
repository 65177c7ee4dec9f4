package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

var _ repository.BookingRepository = (*BookingRepository)(nil)

type BookingRepository struct {
	db Querier
}

func NewBookingRepository(db Querier) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `id, customer_name, customer_phone, customer_email, event_date, event_type,
	venue, amount, is_paid, status, notes, created_at, updated_at`

func (r *BookingRepository) Create(ctx context.Context, b *entity.Booking) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		b.ID, b.CustomerName, nullIfEmpty(b.CustomerPhone), nullIfEmpty(b.CustomerEmail), b.EventDate, string(b.EventType),
		b.Venue, b.Amount, b.IsPaid, string(b.Status), nullIfEmpty(b.Notes), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *entity.Booking) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET customer_name = $2, customer_phone = $3, customer_email = $4, event_date = $5, event_type = $6,
		    venue = $7, amount = $8, is_paid = $9, status = $10, notes = $11, updated_at = $12
		WHERE id = $1`,
		b.ID, b.CustomerName, nullIfEmpty(b.CustomerPhone), nullIfEmpty(b.CustomerEmail), b.EventDate, string(b.EventType),
		b.Venue, b.Amount, b.IsPaid, string(b.Status), nullIfEmpty(b.Notes), b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

// List del evento más próximo al más lejano.
func (r *BookingRepository) List(ctx context.Context, f repository.BookingFilter) ([]*entity.Booking, error) {
	var w filter
	if f.Status != "" {
		w.eq("status", string(f.Status))
	}
	if f.EventType != "" {
		w.eq("event_type", string(f.EventType))
	}
	w.search(f.Search, "customer_name", "venue")

	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings`+w.where()+` ORDER BY event_date, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var list []*entity.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	var phone, email, notes *string
	var eventType, status string
	if err := row.Scan(&b.ID, &b.CustomerName, &phone, &email, &b.EventDate, &eventType,
		&b.Venue, &b.Amount, &b.IsPaid, &status, &notes, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CustomerPhone = stringOrEmpty(phone)
	b.CustomerEmail = stringOrEmpty(email)
	b.Notes = stringOrEmpty(notes)
	b.EventType = entity.EventType(eventType)
	b.Status = entity.BookingStatus(status)
	return &b, nil
}
