package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/textmatch"
)

var (
	_ repository.MovementRepository = (*MovementRepo)(nil)
	_ repository.ReturnRepository   = (*ReturnRepo)(nil)
)

// MovementRepo implementación en memoria de MovementRepository.
type MovementRepo struct {
	db access
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.movements[m.ID]; ok {
			return domain.ErrDuplicate
		}
		s.movements[m.ID] = cloneMovement(*m)
		return nil
	})
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.db.read(ctx, func(s *state) error {
		if m, ok := s.movements[id]; ok {
			cp := cloneMovement(m)
			out = &cp
		}
		return nil
	})
	return out, err
}

func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r *MovementRepo) UpdateStatus(ctx context.Context, id string, status entity.MovementStatus) error {
	return r.db.write(ctx, func(s *state) error {
		m, ok := s.movements[id]
		if !ok {
			return domain.ErrMovementNotFound
		}
		m.Status = status
		s.movements[id] = m
		return nil
	})
}

func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	err := r.db.read(ctx, func(s *state) error {
		for _, m := range s.movements {
			if f.Store != "" && m.Store != f.Store {
				continue
			}
			if f.Status != "" && m.Status != f.Status {
				continue
			}
			if !textmatch.AnyContains(f.Search, m.CustomerName, m.ResponsiblePerson, m.UseLocation) {
				continue
			}
			cp := cloneMovement(m)
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

// ReturnRepo implementación en memoria de ReturnRepository (orden de inserción).
type ReturnRepo struct {
	db access
}

func (r *ReturnRepo) Create(ctx context.Context, rec *entity.ReturnRecord) error {
	return r.db.write(ctx, func(s *state) error {
		s.returns = append(s.returns, cloneReturn(*rec))
		return nil
	})
}

func (r *ReturnRepo) ListByMovement(ctx context.Context, movementID string) ([]*entity.ReturnRecord, error) {
	var out []*entity.ReturnRecord
	err := r.db.read(ctx, func(s *state) error {
		for _, rec := range s.returns {
			if rec.MovementID == movementID {
				cp := cloneReturn(rec)
				out = append(out, &cp)
			}
		}
		return nil
	})
	return out, err
}

func (r *ReturnRepo) List(ctx context.Context) ([]*entity.ReturnRecord, error) {
	var out []*entity.ReturnRecord
	err := r.db.read(ctx, func(s *state) error {
		for _, rec := range s.returns {
			cp := cloneReturn(rec)
			out = append(out, &cp)
		}
		return nil
	})
	return out, err
}
