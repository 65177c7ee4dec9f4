package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/textmatch"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

type TransactionRepo struct {
	db access
}

func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.transactions[t.ID]; ok {
			return domain.ErrDuplicate
		}
		s.transactions[t.ID] = *t
		return nil
	})
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	err := r.db.read(ctx, func(s *state) error {
		if t, ok := s.transactions[id]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *TransactionRepo) Update(ctx context.Context, t *entity.Transaction) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.transactions[t.ID]; !ok {
			return domain.ErrNotFound
		}
		s.transactions[t.ID] = *t
		return nil
	})
}

func (r *TransactionRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.transactions[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.transactions, id)
		return nil
	})
}

func (r *TransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	err := r.db.read(ctx, func(s *state) error {
		for _, t := range s.transactions {
			if f.Type != "" && t.Type != f.Type {
				continue
			}
			if !textmatch.AnyContains(f.Search, t.Description, t.Category, t.Reference) {
				continue
			}
			t := t
			out = append(out, &t)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}
