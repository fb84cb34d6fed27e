package sales

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/pos"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

var errOrderNotFound = domain.NotFound("Order not found")

// OrderUseCase consulta, anulación y resumen de ventas.
type OrderUseCase struct {
	txRunner repository.TxRunner
	orders   repository.OrderRepository
	loc      *time.Location
	now      func() time.Time
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(txRunner repository.TxRunner, orders repository.OrderRepository, opts ...Option) *OrderUseCase {
	o := buildOptions(opts)
	return &OrderUseCase{txRunner: txRunner, orders: orders, loc: o.loc, now: o.now}
}

func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errOrderNotFound
	}
	out := dto.FromOrder(order)
	return &out, nil
}

// List órdenes más recientes primero (limit por defecto 20, máximo 100).
func (uc *OrderUseCase) List(ctx context.Context, q dto.OrderListQuery) (*dto.PageResponse[dto.OrderResponse], error) {
	status := strings.TrimSpace(q.Status)
	if status != "" && status != entity.OrderStatusPaid && status != entity.OrderStatusVoid {
		return nil, domain.Invalid("Invalid status")
	}
	from, err := parseBound("from", q.From, uc.loc, false)
	if err != nil {
		return nil, err
	}
	to, err := parseBound("to", q.To, uc.loc, true)
	if err != nil {
		return nil, err
	}
	page := q.PageQuery.Normalize(20, 100)
	list, total, err := uc.orders.List(ctx, repository.OrderFilter{
		Status: status,
		From:   from,
		To:     to,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, dto.FromOrder(o))
	}
	res := dto.NewPage(items, page, total)
	return &res, nil
}

// Void pasa una orden pagada a anulada. Anular dos veces es un conflicto; el stock no cambia.
func (uc *OrderUseCase) Void(ctx context.Context, userID, id string, in dto.VoidOrderRequest) (*dto.OrderResponse, error) {
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		var err error
		order, err = r.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return errOrderNotFound
		}
		if order.Status != entity.OrderStatusPaid {
			return domain.Conflict("Order is %s, cannot void", order.Status)
		}
		now := uc.now().UTC()
		order.Status = entity.OrderStatusVoid
		order.VoidedAt = &now
		order.VoidedBy = userID
		order.VoidReason = strings.TrimSpace(in.Reason)
		order.UpdatedAt = now
		return r.Orders.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	out := dto.FromOrder(order)
	return &out, nil
}

// Summary agrega las ventas del rango; sin fechas usa el día actual en la zona configurada.
func (uc *OrderUseCase) Summary(ctx context.Context, q dto.SalesSummaryQuery) (*dto.SalesSummaryResponse, error) {
	todayStart, todayEnd := dayRange(uc.now(), uc.loc)
	from, err := parseBound("from", q.From, uc.loc, false)
	if err != nil {
		return nil, err
	}
	to, err := parseBound("to", q.To, uc.loc, true)
	if err != nil {
		return nil, err
	}
	if from == nil && to != nil {
		start, _ := dayRange(*to, uc.loc)
		from = &start
	}
	if from == nil {
		from = &todayStart
	}
	if to == nil {
		to = &todayEnd
	}
	if to.Before(*from) {
		return nil, domain.Invalid("from must be before to")
	}

	res, err := uc.orders.Summary(ctx, *from, *to)
	if err != nil {
		return nil, err
	}
	byPayment := make([]dto.PaymentSummary, 0, len(res.ByPayment))
	for _, b := range res.ByPayment {
		byPayment = append(byPayment, dto.PaymentSummary{Method: b.Method, Count: b.Count, Total: pos.Round2(b.Total)})
	}
	return &dto.SalesSummaryResponse{
		From:      *from,
		To:        *to,
		NetSales:  pos.Round2(res.PaidTotal),
		Paid:      dto.CountTotal{Count: res.PaidCount, Total: pos.Round2(res.PaidTotal)},
		Void:      dto.CountTotal{Count: res.VoidCount, Total: pos.Round2(res.VoidTotal)},
		ByPayment: byPayment,
		TotalCost: pos.Round2(res.PaidCost),
		Profit:    pos.Round2(res.PaidProfit),
	}, nil
}
