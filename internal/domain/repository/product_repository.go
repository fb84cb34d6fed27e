package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// ProductFilter criterios de listado del catálogo.
type ProductFilter struct {
	Search   string // coincidencia parcial sin distinguir mayúsculas sobre name
	Category string
	Active   *bool
	Limit    int
	Offset   int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Product, error)
	// Update persiste todos los campos, incluidos stock y costo.
	Update(ctx context.Context, product *entity.Product) error
	// Delete devuelve domain.ErrNotFound si no existe.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	ListLowStock(ctx context.Context) ([]*entity.Product, error)
}
