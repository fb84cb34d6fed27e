package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// UserRepo implementación en memoria de repository.UserRepository.
type UserRepo struct{ a access }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	return r.a.write(func(st *state) error {
		for _, rw := range st.users {
			if rw.val.Username == u.Username {
				return domain.Duplicate("Username already exists")
			}
		}
		st.users[u.ID] = row[entity.User]{seq: st.seq(), val: *u}
		return nil
	})
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(st *state) error {
		if rw, ok := st.users[id]; ok {
			u := rw.val
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.a.read(func(st *state) error {
		for _, rw := range st.users {
			if rw.val.Username == username {
				u := rw.val
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	return r.a.write(func(st *state) error {
		rw, ok := st.users[u.ID]
		if !ok {
			return domain.ErrNotFound
		}
		for id, other := range st.users {
			if id != u.ID && other.val.Username == u.Username {
				return domain.Duplicate("Username already exists")
			}
		}
		rw.val = *u
		st.users[u.ID] = rw
		return nil
	})
}

func (r *UserRepo) List(ctx context.Context, f repository.UserFilter) ([]*entity.User, int, error) {
	var rows []row[entity.User]
	err := r.a.read(func(st *state) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		for _, rw := range st.users {
			u := rw.val
			if search != "" && !strings.Contains(u.Username, search) {
				continue
			}
			if f.Role != "" && u.Role != f.Role {
				continue
			}
			if f.Active != nil && u.Active != *f.Active {
				continue
			}
			rows = append(rows, rw)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	newestFirst(rows, func(u entity.User) int64 { return u.CreatedAt.UnixNano() })
	total := len(rows)
	out := make([]*entity.User, 0, len(rows))
	for _, rw := range page(rows, f.Limit, f.Offset) {
		u := rw.val
		out = append(out, &u)
	}
	return out, total, nil
}
