package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// SupplierFilter criterios de listado de proveedores (ordenados por nombre).
type SupplierFilter struct {
	Search string
	Active *bool
	Limit  int
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter SupplierFilter) ([]*entity.Supplier, error)
}
