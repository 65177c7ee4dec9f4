package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/wegesa-api/internal/application/dto"
	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
)

// BookingUseCase reservas de eventos.
type BookingUseCase struct {
	repo repository.BookingRepository
}

func NewBookingUseCase(repo repository.BookingRepository) *BookingUseCase {
	return &BookingUseCase{repo: repo}
}

func (uc *BookingUseCase) Create(ctx context.Context, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	now := time.Now().UTC()
	b := &entity.Booking{
		ID:            uuid.New().String(),
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		CustomerEmail: strings.TrimSpace(in.CustomerEmail),
		EventDate:     in.EventDate,
		EventType:     entity.EventType(upper(in.EventType)),
		Venue:         strings.TrimSpace(in.Venue),
		Amount:        in.Amount,
		IsPaid:        in.IsPaid,
		Status:        entity.BookingPending,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.Status != "" {
		b.Status = entity.BookingStatus(upper(in.Status))
	}
	if err := validateBooking(b); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBookingResponse(b), nil
}

func (uc *BookingUseCase) GetByID(ctx context.Context, id string) (*dto.BookingResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBookingResponse(b), nil
}

func (uc *BookingUseCase) Update(ctx context.Context, id string, in dto.UpdateBookingRequest) (*dto.BookingResponse, error) {
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if in.CustomerName != nil {
		b.CustomerName = strings.TrimSpace(*in.CustomerName)
	}
	if in.CustomerPhone != nil {
		b.CustomerPhone = strings.TrimSpace(*in.CustomerPhone)
	}
	if in.CustomerEmail != nil {
		b.CustomerEmail = strings.TrimSpace(*in.CustomerEmail)
	}
	if in.EventDate != nil {
		b.EventDate = *in.EventDate
	}
	if in.EventType != nil {
		b.EventType = entity.EventType(upper(*in.EventType))
	}
	if in.Venue != nil {
		b.Venue = strings.TrimSpace(*in.Venue)
	}
	if in.Amount != nil {
		b.Amount = *in.Amount
	}
	if in.IsPaid != nil {
		b.IsPaid = *in.IsPaid
	}
	if in.Status != nil {
		b.Status = entity.BookingStatus(upper(*in.Status))
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	if err := validateBooking(b); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBookingResponse(b), nil
}

func (uc *BookingUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *BookingUseCase) List(ctx context.Context, q dto.BookingListQuery) ([]dto.BookingResponse, error) {
	f := repository.BookingFilter{
		Status:    entity.BookingStatus(upper(q.Status)),
		EventType: entity.EventType(upper(q.EventType)),
		Search:    q.Search,
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.Invalid("estado desconocido %q", q.Status)
	}
	if f.EventType != "" && !f.EventType.Valid() {
		return nil, domain.Invalid("tipo de evento desconocido %q", q.EventType)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		out = append(out, *toBookingResponse(b))
	}
	return out, nil
}

func validateBooking(b *entity.Booking) error {
	if b.CustomerName == "" {
		return domain.Invalid("customer_name requerido")
	}
	if err := validEmail(b.CustomerEmail, true); err != nil {
		return err
	}
	if b.EventDate.IsZero() {
		return domain.Invalid("event_date requerido")
	}
	if !b.EventType.Valid() {
		return domain.Invalid("tipo de evento desconocido %q", b.EventType)
	}
	if b.Venue == "" {
		return domain.Invalid("venue requerido")
	}
	if b.Amount.IsNegative() {
		return domain.Invalid("amount no puede ser negativo")
	}
	if !b.Status.Valid() {
		return domain.Invalid("estado desconocido %q", b.Status)
	}
	return nil
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		CustomerEmail: b.CustomerEmail,
		EventDate:     b.EventDate,
		EventType:     string(b.EventType),
		Venue:         b.Venue,
		Amount:        b.Amount,
		IsPaid:        b.IsPaid,
		Status:        string(b.Status),
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
