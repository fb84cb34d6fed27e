package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseInvoiceLineRequest línea de compra.
type PurchaseInvoiceLineRequest struct {
	ProductID string           `json:"productId"`
	Qty       int              `json:"qty"`
	UnitCost  *decimal.Decimal `json:"unitCost"`
}

// CreatePurchaseInvoiceRequest cuerpo de POST /api/purchase-invoices.
type CreatePurchaseInvoiceRequest struct {
	SupplierID string                       `json:"supplierId"`
	Lines      []PurchaseInvoiceLineRequest `json:"lines"`
	Note       string                       `json:"note"`
}

// PostPurchaseInvoiceRequest cuerpo de POST /api/purchase-invoices/:id/post.
type PostPurchaseInvoiceRequest struct {
	CostMode string `json:"costMode"`
}

// PurchaseInvoiceLineResponse línea con snapshot del producto.
type PurchaseInvoiceLineResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Qty       int             `json:"qty"`
	UnitCost  decimal.Decimal `json:"unitCost"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// InvoiceSupplier datos del proveedor embebidos en la factura.
type InvoiceSupplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

// PurchaseInvoiceResponse factura de compra.
type PurchaseInvoiceResponse struct {
	ID         string                        `json:"id"`
	Number     string                        `json:"number"`
	SupplierID string                        `json:"supplierId"`
	Supplier   *InvoiceSupplier              `json:"supplier,omitempty"`
	Status     string                        `json:"status"`
	Lines      []PurchaseInvoiceLineResponse `json:"lines"`
	Subtotal   decimal.Decimal               `json:"subtotal"`
	Note       string                        `json:"note"`
	CostMode   string                        `json:"costMode,omitempty"`
	CreatedBy  string                        `json:"createdBy,omitempty"`
	PostedAt   *time.Time                    `json:"postedAt"`
	PostedBy   string                        `json:"postedBy,omitempty"`
	CreatedAt  time.Time                     `json:"createdAt"`
	UpdatedAt  time.Time                     `json:"updatedAt"`
}
