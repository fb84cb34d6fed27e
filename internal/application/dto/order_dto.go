package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItem línea pedida en caja.
type CheckoutItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// CheckoutPayment datos del cobro enviados por el cliente.
type CheckoutPayment struct {
	Method     string          `json:"method"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
}

// CheckoutRequest cuerpo de POST /api/orders/checkout.
type CheckoutRequest struct {
	Items   []CheckoutItem  `json:"items"`
	TaxRate decimal.Decimal `json:"taxRate"`
	Payment CheckoutPayment `json:"payment"`
	Note    string          `json:"note"`
}

// OrderItemResponse snapshot de línea vendida.
type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	Cost      decimal.Decimal `json:"cost"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	LineCost  decimal.Decimal `json:"lineCost"`
}

// PaymentResponse cobro registrado.
type PaymentResponse struct {
	Method     string          `json:"method"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Change     decimal.Decimal `json:"change"`
}

// OrderResponse orden de venta.
type OrderResponse struct {
	ID         string              `json:"id"`
	Number     string              `json:"number"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	TaxRate    decimal.Decimal     `json:"taxRate"`
	TaxAmount  decimal.Decimal     `json:"taxAmount"`
	Total      decimal.Decimal     `json:"total"`
	TotalCost  decimal.Decimal     `json:"totalCost"`
	Profit     decimal.Decimal     `json:"profit"`
	Payment    PaymentResponse     `json:"payment"`
	Note       string              `json:"note"`
	CreatedBy  string              `json:"createdBy,omitempty"`
	VoidedAt   *time.Time          `json:"voidedAt"`
	VoidedBy   string              `json:"voidedBy,omitempty"`
	VoidReason string              `json:"voidReason"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// OrderListQuery filtros de GET /api/orders (from/to: fecha YYYY-MM-DD o RFC3339).
type OrderListQuery struct {
	Status string
	From   string
	To     string
	PageQuery
}

// VoidOrderRequest cuerpo de POST /api/orders/:id/void.
type VoidOrderRequest struct {
	Reason string `json:"reason"`
}

// SalesSummaryQuery rango del resumen.
type SalesSummaryQuery struct {
	From string
	To   string
}

// CountTotal par cantidad/monto.
type CountTotal struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}

// PaymentSummary ventas pagadas por método.
type PaymentSummary struct {
	Method string          `json:"method"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// SalesSummaryResponse resumen de ventas del rango.
type SalesSummaryResponse struct {
	From      time.Time        `json:"from"`
	To        time.Time        `json:"to"`
	NetSales  decimal.Decimal  `json:"netSales"`
	Paid      CountTotal       `json:"paid"`
	Void      CountTotal       `json:"void"`
	ByPayment []PaymentSummary `json:"byPayment"`
	TotalCost decimal.Decimal  `json:"totalCost"`
	Profit    decimal.Decimal  `json:"profit"`
}
