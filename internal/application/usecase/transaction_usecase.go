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

// TransactionUseCase ingresos y egresos de caja.
type TransactionUseCase struct {
	repo repository.TransactionRepository
}

func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

func (uc *TransactionUseCase) Create(ctx context.Context, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	now := time.Now().UTC()
	t := &entity.Transaction{
		ID:          uuid.New().String(),
		Type:        entity.TransactionType(upper(in.Type)),
		Description: strings.TrimSpace(in.Description),
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Reference:   strings.TrimSpace(in.Reference),
		Date:        now,
		CreatedAt:   now,
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if err := validateTransaction(t); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

func (uc *TransactionUseCase) GetByID(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return toTransactionResponse(t), nil
}

func (uc *TransactionUseCase) Update(ctx context.Context, id string, in dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	t, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != nil {
		t.Type = entity.TransactionType(upper(*in.Type))
	}
	if in.Description != nil {
		t.Description = strings.TrimSpace(*in.Description)
	}
	if in.Amount != nil {
		t.Amount = *in.Amount
	}
	if in.Category != nil {
		t.Category = strings.TrimSpace(*in.Category)
	}
	if in.Reference != nil {
		t.Reference = strings.TrimSpace(*in.Reference)
	}
	if in.Date != nil {
		t.Date = *in.Date
	}
	if err := validateTransaction(t); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return toTransactionResponse(t), nil
}

func (uc *TransactionUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *TransactionUseCase) List(ctx context.Context, q dto.TransactionListQuery) ([]dto.TransactionResponse, error) {
	f := repository.TransactionFilter{Type: entity.TransactionType(upper(q.Type)), Search: q.Search}
	if f.Type != "" && !f.Type.Valid() {
		return nil, domain.Invalid("tipo desconocido %q", q.Type)
	}
	list, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toTransactionResponse(t))
	}
	return out, nil
}

func validateTransaction(t *entity.Transaction) error {
	if !t.Type.Valid() {
		return domain.Invalid("tipo desconocido %q", t.Type)
	}
	if t.Description == "" {
		return domain.Invalid("description requerido")
	}
	if !t.Amount.IsPositive() {
		return domain.Invalid("amount debe ser mayor que cero")
	}
	return nil
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	return &dto.TransactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Description: t.Description,
		Amount:      t.Amount,
		Category:    t.Category,
		Reference:   t.Reference,
		Date:        t.Date,
		CreatedAt:   t.CreatedAt,
	}
}
