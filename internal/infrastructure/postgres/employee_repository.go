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

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)

type EmployeeRepository struct {
	db Querier
}

func NewEmployeeRepository(db Querier) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, full_name, date_of_birth, gender, position, mobile_contact,
	contract_start_date, contract_end_date, is_active, created_at, updated_at`

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, e.FullName, e.DateOfBirth, string(e.Gender), e.Position, e.MobileContact,
		e.ContractStartDate, e.ContractEndDate, e.IsActive, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	e, err := scanEmployee(r.db.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return e, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE employees
		SET full_name = $2, date_of_birth = $3, gender = $4, position = $5, mobile_contact = $6,
		    contract_start_date = $7, contract_end_date = $8, is_active = $9, updated_at = $10
		WHERE id = $1`,
		e.ID, e.FullName, e.DateOfBirth, string(e.Gender), e.Position, e.MobileContact,
		e.ContractStartDate, e.ContractEndDate, e.IsActive, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *EmployeeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return affectedOne(tag, domain.ErrNotFound)
}

func (r *EmployeeRepository) List(ctx context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	var w filter
	if f.Gender != "" {
		w.eq("gender", string(f.Gender))
	}
	if f.Active != nil {
		w.eq("is_active", *f.Active)
	}
	w.search(f.Search, "full_name", "position", "mobile_contact")

	rows, err := r.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees`+w.where()+` ORDER BY full_name, id`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	var gender string
	if err := row.Scan(&e.ID, &e.FullName, &e.DateOfBirth, &gender, &e.Position, &e.MobileContact,
		&e.ContractStartDate, &e.ContractEndDate, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	e.Gender = entity.Gender(gender)
	return &e, nil
}
