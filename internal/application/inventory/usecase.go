package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/pos"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// StockUseCase reposición manual, historial de movimientos y alerta de stock bajo.
type StockUseCase struct {
	txRunner  repository.TxRunner
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	gauge     LowStockGauge
	now       func() time.Time
}

// Option configura el caso de uso.
type Option func(*StockUseCase)

// WithLowStockGauge publica el conteo de LowStock en la métrica indicada.
func WithLowStockGauge(g LowStockGauge) Option {
	return func(uc *StockUseCase) {
		if g != nil {
			uc.gauge = g
		}
	}
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *StockUseCase) { uc.now = now }
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner repository.TxRunner, repos repository.Repos, opts ...Option) *StockUseCase {
	uc := &StockUseCase{
		txRunner:  txRunner,
		products:  repos.Products,
		movements: repos.Movements,
		gauge:     nopGauge{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Restock suma qty al stock y registra un movimiento "in" en una sola transacción,
// bloqueando la fila del producto (SELECT FOR UPDATE). Con UpdateCost y UnitCost
// el costo del producto pasa a round2(UnitCost).
func (uc *StockUseCase) Restock(ctx context.Context, userID string, in dto.RestockRequest) (*dto.RestockResponse, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, domain.Invalid("productId is required")
	}
	if in.Qty < 1 {
		return nil, domain.Invalid("qty must be >= 1")
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, domain.Invalid("unitCost must be a non-negative number")
	}

	var out dto.RestockResponse
	err := uc.txRunner.Run(ctx, func(r repository.Repos) error {
		product, err := r.Products.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFound("Product not found")
		}
		now := uc.now().UTC()

		unitCost := decimal.Zero
		if in.UnitCost != nil {
			unitCost = pos.Round2(*in.UnitCost)
			if in.UpdateCost {
				product.Cost = unitCost
			}
		}
		product.StockQty += in.Qty
		product.UpdatedAt = now
		if err := r.Products.Update(ctx, product); err != nil {
			return fmt.Errorf("restock: actualizar producto: %w", err)
		}

		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			Type:      entity.MovementTypeIn,
			ProductID: product.ID,
			Qty:       in.Qty,
			UnitCost:  unitCost,
			Supplier:  strings.TrimSpace(in.Supplier),
			Note:      strings.TrimSpace(in.Note),
			CreatedBy: userID,
			CreatedAt: now,
		}
		if err := r.Movements.Create(ctx, mov); err != nil {
			return fmt.Errorf("restock: registrar movimiento: %w", err)
		}
		mov.ProductName, mov.ProductCategory = product.Name, product.Category

		out = dto.RestockResponse{Product: dto.FromProduct(product), Movement: dto.FromMovement(mov)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Movements historial más reciente primero (limit por defecto 50, máximo 100).
func (uc *StockUseCase) Movements(ctx context.Context, q dto.MovementListQuery) (*dto.PageResponse[dto.StockMovementResponse], error) {
	page := q.PageQuery.Normalize(50, 100)
	list, total, err := uc.movements.List(ctx, repository.MovementFilter{
		ProductID: strings.TrimSpace(q.ProductID),
		Limit:     page.Limit,
		Offset:    page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.FromMovement(m))
	}
	res := dto.NewPage(items, page, total)
	return &res, nil
}

// LowStock productos activos con stock en o bajo su umbral; actualiza la métrica.
func (uc *StockUseCase) LowStock(ctx context.Context) (*dto.ItemsResponse[dto.ProductResponse], error) {
	list, err := uc.LowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ItemsResponse[dto.ProductResponse]{Items: items}, nil
}

// LowStockProducts variante sin DTO; la usa el barrido programado.
func (uc *StockUseCase) LowStockProducts(ctx context.Context) ([]*entity.Product, error) {
	list, err := uc.products.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	uc.gauge.SetLowStock(len(list))
	return list, nil
}
