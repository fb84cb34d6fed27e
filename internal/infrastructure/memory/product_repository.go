package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// ProductRepo implementación en memoria de repository.ProductRepository.
type ProductRepo struct{ a access }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		st.products[p.ID] = row[entity.Product]{seq: st.seq(), val: *p}
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(st *state) error {
		if rw, ok := st.products[id]; ok {
			p := rw.val
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el Store bloqueado.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(ids))
	err := r.a.read(func(st *state) error {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if rw, ok := st.products[id]; ok {
				p := rw.val
				out = append(out, &p)
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.a.write(func(st *state) error {
		rw, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val = *p
		st.products[p.ID] = rw
		return nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	var rows []row[entity.Product]
	err := r.a.read(func(st *state) error {
		search := strings.ToLower(strings.TrimSpace(f.Search))
		for _, rw := range st.products {
			p := rw.val
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			if f.Category != "" && p.Category != f.Category {
				continue
			}
			if f.Active != nil && p.Active != *f.Active {
				continue
			}
			rows = append(rows, rw)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	newestFirst(rows, func(p entity.Product) int64 { return p.CreatedAt.UnixNano() })
	total := len(rows)
	out := make([]*entity.Product, 0, len(rows))
	for _, rw := range page(rows, f.Limit, f.Offset) {
		p := rw.val
		out = append(out, &p)
	}
	return out, total, nil
}

// ListLowStock productos activos con stock en o bajo el umbral, ordenados por nombre.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.a.read(func(st *state) error {
		for _, rw := range st.products {
			p := rw.val
			if p.Active && p.IsLowStock() {
				out = append(out, &p)
			}
		}
		return nil
	})
	sortByName(out, func(p *entity.Product) string { return p.Name })
	return out, err
}
