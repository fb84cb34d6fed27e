package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/pos"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/internal/domain/sequence"
)

// CheckoutUseCase registra una venta: valoriza el carrito, valida el pago y asigna el número
// POS-YYYYMMDD-NNNN dentro de la misma transacción que inserta la orden.
type CheckoutUseCase struct {
	txRunner repository.TxRunner
	recorder OrderRecorder
	loc      *time.Location
	now      func() time.Time
}

// Option configura los casos de uso de ventas.
type Option func(*options)

type options struct {
	recorder OrderRecorder
	loc      *time.Location
	now      func() time.Time
}

// WithLocation zona horaria del día de numeración y de los rangos de fecha.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRecorder registra cada venta confirmada.
func WithRecorder(r OrderRecorder) Option {
	return func(o *options) { o.recorder = r }
}

func buildOptions(opts []Option) options {
	o := options{loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewCheckoutUseCase construye el caso de uso.
func NewCheckoutUseCase(txRunner repository.TxRunner, opts ...Option) *CheckoutUseCase {
	o := buildOptions(opts)
	return &CheckoutUseCase{txRunner: txRunner, recorder: o.recorder, loc: o.loc, now: o.now}
}

// Checkout crea una orden pagada a nombre de userID. No mueve stock.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, userID string, in dto.CheckoutRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.Invalid("Cart is empty")
	}
	if err := pos.ValidateTaxRate(in.TaxRate); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		if id := strings.TrimSpace(it.ProductID); id != "" {
			ids = append(ids, id)
		}
	}

	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		products, err := r.Products.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("checkout: cargar productos: %w", err)
		}
		byID := make(map[string]*entity.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		lines := make([]pos.CartLine, 0, len(in.Items))
		for _, it := range in.Items {
			lines = append(lines, pos.CartLine{Product: byID[strings.TrimSpace(it.ProductID)], Qty: it.Qty})
		}
		totals, err := pos.PriceCart(lines, in.TaxRate)
		if err != nil {
			return err
		}
		payment, err := pos.SettlePayment(totals.Total, in.Payment.PaidAmount, in.Payment.Method)
		if err != nil {
			return err
		}

		now := uc.now()
		key := sequence.DayKey(sequence.PrefixOrder, now, uc.loc)
		seq, err := r.Sequences.Next(ctx, key)
		if err != nil {
			return fmt.Errorf("checkout: numerar orden: %w", err)
		}
		order = &entity.Order{
			ID:        uuid.New().String(),
			Number:    sequence.Format(key, seq),
			Status:    entity.OrderStatusPaid,
			Items:     totals.Items,
			Subtotal:  totals.Subtotal,
			TaxRate:   totals.TaxRate,
			TaxAmount: totals.TaxAmount,
			Total:     totals.Total,
			TotalCost: totals.TotalCost,
			Profit:    totals.Profit,
			Payment:   payment,
			Note:      strings.TrimSpace(in.Note),
			CreatedBy: userID,
			CreatedAt: now.UTC(),
			UpdatedAt: now.UTC(),
		}
		return r.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	if uc.recorder != nil {
		uc.recorder.RecordOrder(order.Payment.Method)
	}
	out := dto.FromOrder(order)
	return &out, nil
}
