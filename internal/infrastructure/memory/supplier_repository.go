package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// SupplierRepo implementación en memoria de repository.SupplierRepository.
type SupplierRepo struct{ a access }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.suppliers[s.ID] = row[entity.Supplier]{seq: st.seq(), val: *s}
		return nil
	})
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.a.read(func(st *state) error {
		if rw, ok := st.suppliers[id]; ok {
			s := rw.val
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return r.a.write(func(st *state) error {
		rw, ok := st.suppliers[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val = *s
		st.suppliers[s.ID] = rw
		return nil
	})
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.suppliers, id)
		return nil
	})
}

func (r *SupplierRepo) List(ctx context.Context, f repository.SupplierFilter) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.a.read(func(st *state) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		for _, rw := range st.suppliers {
			s := rw.val
			if search != "" && !strings.Contains(strings.ToLower(s.Name), search) {
				continue
			}
			if f.Active != nil && s.Active != *f.Active {
				continue
			}
			out = append(out, &s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sortByName(out, func(s *entity.Supplier) string { return s.Name })
	return page(out, f.Limit, 0), nil
}

func sortByName[T any](items []T, name func(T) string) {
	sort.SliceStable(items, func(i, j int) bool { return name(items[i]) < name(items[j]) })
}
