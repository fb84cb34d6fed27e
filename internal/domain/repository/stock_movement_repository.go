package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// MovementFilter criterios de listado de movimientos.
type MovementFilter struct {
	ProductID string
	Limit     int
	Offset    int
}

// StockMovementRepository puerto append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los más recientes primero, con nombre/categoría del producto.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int, error)
}
