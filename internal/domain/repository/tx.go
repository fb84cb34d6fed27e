package repository

import "context"

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products  ProductRepository
	Orders    OrderRepository
	Movements StockMovementRepository
	Suppliers SupplierRepository
	Invoices  PurchaseInvoiceRepository
	Users     UserRepository
	Sequences SequenceRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback en otro caso.
// Garantiza atomicidad para checkout, reposición y contabilización de facturas.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
