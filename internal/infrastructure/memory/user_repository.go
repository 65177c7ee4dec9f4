package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/wegesa-api/internal/domain"
	"github.com/jhoicas/wegesa-api/internal/domain/entity"
	"github.com/jhoicas/wegesa-api/internal/domain/repository"
	"github.com/jhoicas/wegesa-api/pkg/textmatch"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	db access
}

func emailTaken(s *state, email, exceptID string) bool {
	for _, u := range s.users {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		if emailTaken(s, u.Email, "") {
			return domain.ErrEmailAlreadyExists
		}
		s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(ctx, func(s *state) error {
		if u, ok := s.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(ctx, func(s *state) error {
		for _, u := range s.users {
			if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.users[u.ID]; !ok {
			return domain.ErrUserNotFound
		}
		if emailTaken(s, u.Email, u.ID) {
			return domain.ErrEmailAlreadyExists
		}
		s.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(s *state) error {
		if _, ok := s.users[id]; !ok {
			return domain.ErrUserNotFound
		}
		delete(s.users, id)
		return nil
	})
}

func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, error) {
	var out []*entity.User
	err := r.db.read(ctx, func(s *state) error {
		for _, u := range s.users {
			if f.Role != "" && u.Role != f.Role {
				continue
			}
			if f.Active != nil && u.IsActive != *f.Active {
				continue
			}
			if !textmatch.AnyContains(f.Search, u.Name, u.Email) {
				continue
			}
			u := u
			out = append(out, &u)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}
