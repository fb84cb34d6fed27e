package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// OrderRepo implementación en memoria de repository.OrderRepository.
type OrderRepo struct{ a access }

var _ repository.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return r.a.write(func(st *state) error {
		for _, rw := range st.orders {
			if rw.val.Number == o.Number {
				return domain.Duplicate("order number %s already exists", o.Number)
			}
		}
		st.orders[o.ID] = row[entity.Order]{seq: st.seq(), val: copyOrder(*o)}
		return nil
	})
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.a.read(func(st *state) error {
		if rw, ok := st.orders[id]; ok {
			o := copyOrder(rw.val)
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, o *entity.Order) error {
	return r.a.write(func(st *state) error {
		rw, ok := st.orders[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rw.val.Status = o.Status
		rw.val.VoidedBy = o.VoidedBy
		rw.val.VoidReason = o.VoidReason
		rw.val.UpdatedAt = o.UpdatedAt
		rw.val.VoidedAt = nil
		if o.VoidedAt != nil {
			t := *o.VoidedAt
			rw.val.VoidedAt = &t
		}
		st.orders[o.ID] = rw
		return nil
	})
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, int, error) {
	var rows []row[entity.Order]
	err := r.a.read(func(st *state) error {
		for _, rw := range st.orders {
			if f.Status != "" && rw.val.Status != f.Status {
				continue
			}
			if !inRange(rw.val.CreatedAt, f.From, f.To) {
				continue
			}
			rows = append(rows, rw)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	newestFirst(rows, func(o entity.Order) int64 { return o.CreatedAt.UnixNano() })
	total := len(rows)
	out := make([]*entity.Order, 0, len(rows))
	for _, rw := range page(rows, f.Limit, f.Offset) {
		o := copyOrder(rw.val)
		out = append(out, &o)
	}
	return out, total, nil
}

func (r *OrderRepo) Summary(ctx context.Context, from, to time.Time) (*repository.SalesSummaryResult, error) {
	res := &repository.SalesSummaryResult{
		PaidTotal:  decimal.Zero,
		PaidCost:   decimal.Zero,
		PaidProfit: decimal.Zero,
		VoidTotal:  decimal.Zero,
	}
	byMethod := map[string]*repository.PaymentBreakdown{}
	err := r.a.read(func(st *state) error {
		for _, rw := range st.orders {
			o := rw.val
			if !inRange(o.CreatedAt, &from, &to) {
				continue
			}
			switch o.Status {
			case entity.OrderStatusPaid:
				res.PaidCount++
				res.PaidTotal = res.PaidTotal.Add(o.Total)
				res.PaidCost = res.PaidCost.Add(o.TotalCost)
				res.PaidProfit = res.PaidProfit.Add(o.Profit)
				b, ok := byMethod[o.Payment.Method]
				if !ok {
					b = &repository.PaymentBreakdown{Method: o.Payment.Method, Total: decimal.Zero}
					byMethod[o.Payment.Method] = b
				}
				b.Count++
				b.Total = b.Total.Add(o.Total)
			case entity.OrderStatusVoid:
				res.VoidCount++
				res.VoidTotal = res.VoidTotal.Add(o.Total)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	for _, m := range entity.PaymentMethods {
		if b, ok := byMethod[m]; ok {
			res.ByPayment = append(res.ByPayment, *b)
		}
	}
	return res, nil
}
