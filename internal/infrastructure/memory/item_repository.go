package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/textmatch"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación en memoria de ItemRepository.
type ItemRepo struct {
	db access
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.items[item.ID]; ok {
			return domain.ErrDuplicate
		}
		s.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var out *entity.Item
	err := r.db.read(ctx, func(s *state) error {
		if it, ok := s.items[id]; ok {
			out = &it
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la unidad de trabajo ya tiene el lock exclusivo.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.GetByID(ctx, id)
}

func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.items[item.ID]; !ok {
			return domain.ErrNotFound
		}
		s.items[item.ID] = *item
		return nil
	})
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.items[id]; !ok {
			return domain.ErrNotFound
		}
		delete(s.items, id)
		return nil
	})
}

// List ordena por nombre y luego por id.
func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.Item, error) {
	var out []*entity.Item
	err := r.db.read(ctx, func(s *state) error {
		for _, it := range s.items {
			if f.Store != "" && it.Store != f.Store {
				continue
			}
			if f.Type != "" && !textmatch.Contains(it.Type, f.Type) {
				continue
			}
			if !textmatch.AnyContains(f.Search, it.Name, it.Brand, it.Type) {
				continue
			}
			it := it
			out = append(out, &it)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}
