package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ims/internal/domain"
	"github.com/jhoicas/inventory-ims/internal/domain/entity"
	"github.com/jhoicas/inventory-ims/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria; el username es único.
type UserRepo struct{ v view }

// Create inserta el usuario; falla con ErrDuplicate si el username ya existe.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(s *state) error {
		for _, other := range s.users {
			if other.Username == u.Username {
				return fmt.Errorf("%w: username", domain.ErrDuplicate)
			}
		}
		s.users[u.ID] = *u
		return nil
	})
}

// GetByID devuelve el usuario o nil si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(s *state) {
		if u, ok := s.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

// GetByUsername busca por username exacto.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(s *state) {
		for _, u := range s.users {
			if u.Username == username {
				u := u
				out = &u
				return
			}
		}
	})
	return out, nil
}

// Update persiste hash de contraseña y rol.
func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.v.write(func(s *state) error {
		cur, ok := s.users[u.ID]
		if !ok {
			return nil
		}
		cur.PasswordHash = u.PasswordHash
		cur.Role = u.Role
		s.users[u.ID] = cur
		return nil
	})
}
