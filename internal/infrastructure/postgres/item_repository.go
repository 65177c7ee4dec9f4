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

var _ repository.ItemRepository = (*ItemRepository)(nil)

// ItemRepository implementación de repository.ItemRepository para PostgreSQL.
type ItemRepository struct {
	db Querier
}

func NewItemRepository(db Querier) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, name, brand, type, quantity, in_stock, store, date_of_entry, created_at, updated_at`

func (r *ItemRepository) Create(ctx context.Context, it *entity.Item) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		it.ID, it.Name, it.Brand, it.Type, it.Quantity, it.InStock, string(it.Store), it.DateOfEntry, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila hasta Commit/Rollback; fuera de una tx el lock no dura.
func (r *ItemRepository) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.get(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

func (r *ItemRepository) get(ctx context.Context, query, id string) (*entity.Item, error) {
	it, err := scanItem(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

func (r *ItemRepository) Update(ctx context.Context, it *entity.Item) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE items
		SET name = $2, brand = $3, type = $4, quantity = $5, in_stock = $6, store = $7, date_of_entry = $8, updated_at = $9
		WHERE id = $1`,
		it.ID, it.Name, it.Brand, it.Type, it.Quantity, it.InStock, string(it.Store), it.DateOfEntry, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *ItemRepository) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	var w filter
	if f.Store != "" {
		w.eq("store", string(f.Store))
	}
	if f.Type != "" {
		w.search(f.Type, "type")
	}
	w.search(f.Search, "name", "brand", "type")

	rows, err := r.db.Query(ctx, `SELECT `+itemColumns+` FROM items`+w.where()+` ORDER BY name, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var store string
	if err := row.Scan(&it.ID, &it.Name, &it.Brand, &it.Type, &it.Quantity, &it.InStock, &store, &it.DateOfEntry, &it.CreatedAt, &it.UpdatedAt); err != nil {
		return nil, err
	}
	it.Store = entity.StoreID(store)
	return &it, nil
}
