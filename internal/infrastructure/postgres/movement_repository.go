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

var (
	_ repository.MovementRepository = (*MovementRepository)(nil)
	_ repository.ReturnRepository   = (*ReturnRepository)(nil)
)

// MovementRepository despachos (movements + movement_lines).
type MovementRepository struct {
	db Querier
}

func NewMovementRepository(db Querier) *MovementRepository {
	return &MovementRepository{db: db}
}

const movementColumns = `id, created_at, store, authorized_by_user_id, issued_by_user_id,
	customer_name, responsible_person, use_location, expected_return_at, status`

// Create inserta cabecera y líneas; se espera que corra dentro de TxRunner.Run.
func (r *MovementRepository) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.CreatedAt, string(m.Store), m.AuthorizedByUserID, m.IssuedByUserID,
		m.CustomerName, m.ResponsiblePerson, m.UseLocation, m.ExpectedReturnAt, string(m.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	for i, l := range m.Lines {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO movement_lines (movement_id, position, item_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			m.ID, i, l.ItemID, l.Quantity,
		); err != nil {
			return fmt.Errorf("insert movement line: %w", err)
		}
	}
	return nil
}

func (r *MovementRepository) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id)
}

func (r *MovementRepository) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.get(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1 FOR UPDATE`, id)
}

func (r *MovementRepository) get(ctx context.Context, query, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get movement: %w", err)
	}
	lines, err := loadLines(ctx, r.db, `SELECT movement_id, item_id, quantity FROM movement_lines
		WHERE movement_id = ANY($1) ORDER BY movement_id, position`, []string{m.ID})
	if err != nil {
		return nil, err
	}
	m.Lines = lines[m.ID]
	return m, nil
}

func (r *MovementRepository) UpdateStatus(ctx context.Context, id string, status entity.MovementStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE movements SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update movement status: %w", err)
	}
	return affectedOne(tag, domain.ErrMovementNotFound)
}

func (r *MovementRepository) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var w filter
	if f.Store != "" {
		w.eq("store", string(f.Store))
	}
	if f.Status != "" {
		w.eq("status", string(f.Status))
	}
	w.search(f.Search, "customer_name", "responsible_person", "use_location")

	rows, err := r.db.Query(ctx, `SELECT `+movementColumns+` FROM movements`+w.where()+` ORDER BY created_at DESC, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, len(list))
	for i, m := range list {
		ids[i] = m.ID
	}
	lines, err := loadLines(ctx, r.db, `SELECT movement_id, item_id, quantity FROM movement_lines
		WHERE movement_id = ANY($1) ORDER BY movement_id, position`, ids)
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		m.Lines = lines[m.ID]
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var store, status string
	if err := row.Scan(&m.ID, &m.CreatedAt, &store, &m.AuthorizedByUserID, &m.IssuedByUserID,
		&m.CustomerName, &m.ResponsiblePerson, &m.UseLocation, &m.ExpectedReturnAt, &status); err != nil {
		return nil, err
	}
	m.Store = entity.StoreID(store)
	m.Status = entity.MovementStatus(status)
	return &m, nil
}

// loadLines agrupa por dueño (movement_id o return_id) las líneas de la consulta.
func loadLines(ctx context.Context, db Querier, query string, ownerIDs []string) (map[string][]entity.DispatchLine, error) {
	rows, err := db.Query(ctx, query, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("load lines: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.DispatchLine, len(ownerIDs))
	for rows.Next() {
		var owner string
		var l entity.DispatchLine
		if err := rows.Scan(&owner, &l.ItemID, &l.Quantity); err != nil {
			return nil, err
		}
		out[owner] = append(out[owner], l)
	}
	return out, rows.Err()
}

// ReturnRepository registros de devolución (return_records + return_lines).
type ReturnRepository struct {
	db Querier
}

func NewReturnRepository(db Querier) *ReturnRepository {
	return &ReturnRepository{db: db}
}

func (r *ReturnRepository) Create(ctx context.Context, rec *entity.ReturnRecord) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO return_records (id, movement_id, returned_at, received_by_user_id)
		VALUES ($1, $2, $3, $4)`,
		rec.ID, rec.MovementID, rec.ReturnedAt, rec.ReceivedByUserID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert return: %w", err)
	}
	for i, l := range rec.Lines {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO return_lines (return_id, position, item_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			rec.ID, i, l.ItemID, l.Quantity,
		); err != nil {
			return fmt.Errorf("insert return line: %w", err)
		}
	}
	return nil
}

func (r *ReturnRepository) ListByMovement(ctx context.Context, movementID string) ([]*entity.ReturnRecord, error) {
	return r.list(ctx, ` WHERE movement_id = $1`, movementID)
}

func (r *ReturnRepository) List(ctx context.Context) ([]*entity.ReturnRecord, error) {
	return r.list(ctx, "")
}

func (r *ReturnRepository) list(ctx context.Context, where string, args ...any) ([]*entity.ReturnRecord, error) {
	rows, err := r.db.Query(ctx, `SELECT id, movement_id, returned_at, received_by_user_id
		FROM return_records`+where+` ORDER BY returned_at, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	var list []*entity.ReturnRecord
	for rows.Next() {
		var rec entity.ReturnRecord
		if err := rows.Scan(&rec.ID, &rec.MovementID, &rec.ReturnedAt, &rec.ReceivedByUserID); err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, &rec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	ids := make([]string, len(list))
	for i, rec := range list {
		ids[i] = rec.ID
	}
	lines, err := loadLines(ctx, r.db, `SELECT return_id, item_id, quantity FROM return_lines
		WHERE return_id = ANY($1) ORDER BY return_id, position`, ids)
	if err != nil {
		return nil, err
	}
	for _, rec := range list {
		rec.Lines = lines[rec.ID]
	}
	return list, nil
}
