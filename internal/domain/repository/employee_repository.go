package repository

import (
	"context"

	"github.com/jhoicas/wegesa-api/internal/domain/entity"
)

type EmployeeFilter struct {
	Gender entity.Gender
	Active *bool
	Search string // nombre, cargo o contacto
}

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, e *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	Update(ctx context.Context, e *entity.Employee) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f EmployeeFilter) ([]*entity.Employee, error)
}
