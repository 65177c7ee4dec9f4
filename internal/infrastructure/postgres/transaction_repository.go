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

var _ repository.TransactionRepository = (*TransactionRepository)(nil)

// TransactionRepository movimientos de caja (ingresos y egresos).
type TransactionRepository struct {
	db Querier
}

func NewTransactionRepository(db Querier) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, type, description, amount, category, reference, date, created_at`

func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, string(t.Type), t.Description, t.Amount, nullIfEmpty(t.Category), nullIfEmpty(t.Reference), t.Date, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (r *TransactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions
		SET type = $2, description = $3, amount = $4, category = $5, reference = $6, date = $7
		WHERE id = $1`,
		t.ID, string(t.Type), t.Description, t.Amount, nullIfEmpty(t.Category), nullIfEmpty(t.Reference), t.Date,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *TransactionRepository) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var w filter
	if f.Type != "" {
		w.eq("type", string(f.Type))
	}
	w.search(f.Search, "description", "category", "reference")

	rows, err := r.db.Query(ctx, `SELECT `+transactionColumns+` FROM transactions`+w.where()+` ORDER BY date DESC, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	var t entity.Transaction
	var typ string
	var category, reference *string
	if err := row.Scan(&t.ID, &typ, &t.Description, &t.Amount, &category, &reference, &t.Date, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Type = entity.TransactionType(typ)
	t.Category = stringOrEmpty(category)
	t.Reference = stringOrEmpty(reference)
	return &t, nil
}
