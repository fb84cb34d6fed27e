package repository

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// PurchaseInvoiceRepository define el puerto de persistencia para facturas de compra y sus líneas.
type PurchaseInvoiceRepository interface {
	// Create persiste cabecera y líneas; domain.ErrDuplicate si el número ya existe.
	Create(ctx context.Context, invoice *entity.PurchaseInvoice) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseInvoice, error)
	// UpdateStatus persiste status, cost_mode y campos de contabilización.
	UpdateStatus(ctx context.Context, invoice *entity.PurchaseInvoice) error
	List(ctx context.Context, limit, offset int) ([]*entity.PurchaseInvoice, int, error)
}
