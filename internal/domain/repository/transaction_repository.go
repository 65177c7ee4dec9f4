package repository

import (
	"context"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

type TransactionFilter struct {
	Type   entity.TransactionType
	Search string
}

// TransactionRepository define el puerto de persistencia para Transaction.
type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	Update(ctx context.Context, t *entity.Transaction) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f TransactionFilter) ([]*entity.Transaction, error)
}
