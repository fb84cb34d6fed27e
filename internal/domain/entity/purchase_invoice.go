package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura de compra.
const (
	InvoiceStatusDraft  = "draft"
	InvoiceStatusPosted = "posted"
	InvoiceStatusVoid   = "void"
)

// Modos de actualización de costo al contabilizar.
const (
	CostModeLast     = "last"
	CostModeWeighted = "weighted"
)

// PurchaseInvoiceLine línea de compra con snapshot de nombre/categoría.
type PurchaseInvoiceLine struct {
	ProductID string
	Name      string
	Category  string
	Qty       int
	UnitCost  decimal.Decimal
	LineTotal decimal.Decimal
}

// PurchaseInvoice factura de proveedor. Solo puede contabilizarse una vez (draft → posted).
type PurchaseInvoice struct {
	ID         string
	Number     string // PINV-YYYYMMDD-NNNN
	SupplierID string
	Status     string
	Lines      []PurchaseInvoiceLine
	Subtotal   decimal.Decimal
	Note       string
	CostMode   string // se registra al contabilizar
	CreatedBy  string
	PostedAt   *time.Time
	PostedBy   string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Poblado en lecturas (no se persiste en la factura).
	Supplier *Supplier
}
