package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, type, product_id, qty, unit_cost, supplier, note, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Type, m.ProductID, m.Qty, m.UnitCost, m.Supplier, m.Note, m.Reference, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List lista movimientos (más recientes primero) con nombre y categoría actuales del producto.
func (r *StockMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.StockMovement, int, error) {
	w := &whereBuilder{}
	if f.ProductID != "" {
		w.add(`m.product_id = $%d`, f.ProductID)
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements m`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	page, args := w.limitOffset(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.type, m.product_id, m.qty, m.unit_cost, m.supplier, m.note, m.reference, m.created_by, m.created_at,
			COALESCE(p.name, ''), COALESCE(p.category, '')
		FROM stock_movements m LEFT JOIN products p ON p.id = m.product_id`+w.sql()+`
		ORDER BY m.created_at DESC, m.id DESC`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	list := []*entity.StockMovement{}
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.Type, &m.ProductID, &m.Qty, &m.UnitCost, &m.Supplier, &m.Note,
			&m.Reference, &m.CreatedBy, &m.CreatedAt, &m.ProductName, &m.ProductCategory); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}
