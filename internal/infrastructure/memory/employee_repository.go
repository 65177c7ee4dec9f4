package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/textmatch"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

type EmployeeRepo struct {
	db access
}

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.employees[e.ID]; ok {
			return domain.ErrDuplicate
		}
		s.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.db.read(ctx, func(s *state) error {
		if e, ok := s.employees[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.employees[e.ID]; !ok {
			return domain.ErrNotFound
		}
		s.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.employees[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.employees, id)
		return nil
	})
}

func (r *EmployeeRepo) List(ctx context.Context, f repository.EmployeeFilter) ([]*entity.Employee, error) {
	var out []*entity.Employee
	err := r.db.read(ctx, func(s *state) error {
		for _, e := range s.employees {
			if f.Gender != "" && e.Gender != f.Gender {
				continue
			}
			if f.Active != nil && e.IsActive != *f.Active {
				continue
			}
			if !textmatch.AnyContains(f.Search, e.FullName, e.Position, e.MobileContact) {
				continue
			}
			e := e
			out = append(out, &e)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, err
}
