package memory

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// StockMovementRepo implementación en memoria (append-only).
type StockMovementRepo struct{ a access }

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.a.write(func(st *state) error {
		mv := *m
		mv.ProductName, mv.ProductCategory = "", ""
		st.movements = append(st.movements, row[entity.StockMovement]{seq: st.seq(), val: mv})
		return nil
	})
}

func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	var rows []row[entity.StockMovement]
	products := map[string]entity.Product{}
	err := r.a.read(func(st *state) error {
		for _, rw := range st.movements {
			if f.ProductID != "" && rw.val.ProductID != f.ProductID {
				continue
			}
			rows = append(rows, rw)
			if p, ok := st.products[rw.val.ProductID]; ok {
				products[rw.val.ProductID] = p.val
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	newestFirst(rows, func(m entity.StockMovement) int64 { return m.CreatedAt.UnixNano() })
	total := len(rows)
	out := make([]*entity.StockMovement, 0, len(rows))
	for _, rw := range page(rows, f.Limit, f.Offset) {
		m := rw.val
		if p, ok := products[m.ProductID]; ok {
			m.ProductName, m.ProductCategory = p.Name, p.Category
		}
		out = append(out, &m)
	}
	return out, total, nil
}
