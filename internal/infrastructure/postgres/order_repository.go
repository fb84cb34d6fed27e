package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (orders + order_items).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, status, subtotal, tax_rate, tax_amount, total, total_cost, profit,
	payment_method, paid_amount, change_amount, note, created_by, voided_at, voided_by, void_reason, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(&o.ID, &o.Number, &o.Status, &o.Subtotal, &o.TaxRate, &o.TaxAmount, &o.Total,
		&o.TotalCost, &o.Profit, &o.Payment.Method, &o.Payment.PaidAmount, &o.Payment.Change,
		&o.Note, &o.CreatedBy, &o.VoidedAt, &o.VoidedBy, &o.VoidReason, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserta la cabecera y sus líneas. Debe llamarse dentro de una transacción.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Number, o.Status, o.Subtotal, o.TaxRate, o.TaxAmount, o.Total, o.TotalCost, o.Profit,
		o.Payment.Method, o.Payment.PaidAmount, o.Payment.Change, o.Note, o.CreatedBy,
		o.VoidedAt, o.VoidedBy, o.VoidReason, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Duplicate("order number %s already exists", o.Number)
		}
		return fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for i, it := range o.Items {
		batch.Queue(`
			INSERT INTO order_items (order_id, line_no, product_id, name, category, price, cost, qty, line_total, line_cost)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			o.ID, i+1, it.ProductID, it.Name, it.Category, it.Price, it.Cost, it.Qty, it.LineTotal, it.LineCost)
	}
	if batch.Len() == 0 {
		return nil
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for range o.Items {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden bloqueando la cabecera.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*entity.Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
		o.Items = []entity.OrderItem{}
	}
	rows, err := r.q.Query(ctx, `
		SELECT order_id, product_id, name, category, price, cost, qty, line_total, line_cost
		FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, line_no`, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var orderID string
		var it entity.OrderItem
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.Category, &it.Price, &it.Cost,
			&it.Qty, &it.LineTotal, &it.LineCost); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

// UpdateStatus persiste el estado y los datos de anulación.
func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE orders SET status = $2, voided_at = $3, voided_by = $4, void_reason = $5, updated_at = $6
		WHERE id = $1`,
		o.ID, o.Status, o.VoidedAt, o.VoidedBy, o.VoidReason, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func orderWhere(f repository.OrderFilter) *whereBuilder {
	w := &whereBuilder{}
	if f.Status != "" {
		w.add(`status = $%d`, f.Status)
	}
	if f.From != nil {
		w.add(`created_at >= $%d`, *f.From)
	}
	if f.To != nil {
		w.add(`created_at <= $%d`, *f.To)
	}
	return w
}

// List lista órdenes (más recientes primero) con sus líneas.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	w := orderWhere(f)
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}
	page, args := w.limitOffset(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+orderColumns+` FROM orders`+w.sql()+` ORDER BY created_at DESC, id DESC`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	list := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Summary agrega totales por estado y por método de pago en [from, to].
func (r *OrderRepo) Summary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	res := &repository.SalesSummaryResult{}
	err := r.q.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'paid'),
			COALESCE(SUM(total) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(total_cost) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(profit) FILTER (WHERE status = 'paid'), 0),
			COUNT(*) FILTER (WHERE status = 'void'),
			COALESCE(SUM(total) FILTER (WHERE status = 'void'), 0)
		FROM orders WHERE created_at >= $1 AND created_at <= $2`, from, to).
		Scan(&res.PaidCount, &res.PaidTotal, &res.PaidCost, &res.PaidProfit, &res.VoidCount, &res.VoidTotal)
	if err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT payment_method, COUNT(*), COALESCE(SUM(total), 0)
		FROM orders WHERE status = 'paid' AND created_at >= $1 AND created_at <= $2
		GROUP BY payment_method`, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by payment: %w", err)
	}
	defer rows.Close()
	byMethod := map[string]repository.PaymentBreakdown{}
	for rows.Next() {
		var b repository.PaymentBreakdown
		var total decimal.Decimal
		if err := rows.Scan(&b.Method, &b.Count, &total); err != nil {
			return nil, fmt.Errorf("scan payment breakdown: %w", err)
		}
		b.Total = total
		byMethod[b.Method] = b
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range entity.PaymentMethods {
		if b, ok := byMethod[m]; ok {
			res.ByPayment = append(res.ByPayment, b)
		}
	}
	return res, nil
}
