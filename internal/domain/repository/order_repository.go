package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// OrderFilter criterios de listado de órdenes. From/To inclusivos sobre created_at.
type OrderFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// PaymentBreakdown ventas pagadas agrupadas por método.
type PaymentBreakdown struct {
	Method string
	Count  int
	Total  decimal.Decimal
}

// SalesSummaryResult resultado crudo de la agregación de ventas; el use case lo convierte en DTO.
type SalesSummaryResult struct {
	PaidCount  int
	PaidTotal  decimal.Decimal
	PaidCost   decimal.Decimal
	PaidProfit decimal.Decimal
	VoidCount  int
	VoidTotal  decimal.Decimal
	ByPayment  []PaymentBreakdown
}

// OrderRepository define el puerto de persistencia para órdenes de venta.
type OrderRepository interface {
	// Create devuelve domain.ErrDuplicate si el número ya existe.
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	// UpdateStatus persiste status y campos de anulación.
	UpdateStatus(ctx context.Context, order *entity.Order) error
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int, error)
	// Summary agrega las órdenes creadas en [from, to].
	Summary(ctx context.Context, from, to time.Time) (*SalesSummaryResult, error)
}
