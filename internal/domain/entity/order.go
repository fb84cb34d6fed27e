package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	OrderStatusPaid = "paid"
	OrderStatusVoid = "void"
)

// Métodos de pago aceptados en caja.
const (
	PaymentCash  = "cash"
	PaymentCard  = "card"
	PaymentOther = "other"
)

// PaymentMethods lista los métodos en el orden en que se reportan.
var PaymentMethods = []string{PaymentCash, PaymentCard, PaymentOther}

// NormalizePaymentMethod devuelve method en minúsculas si es válido; en otro caso "cash".
func NormalizePaymentMethod(method string) string {
	method = strings.ToLower(strings.TrimSpace(method))
	for _, m := range PaymentMethods {
		if m == method {
			return m
		}
	}
	return PaymentCash
}

// OrderItem es el snapshot inmutable de una línea vendida: cambios posteriores
// al producto no alteran recibos históricos.
type OrderItem struct {
	ProductID string
	Name      string
	Category  string
	Price     decimal.Decimal
	Cost      decimal.Decimal // COGS unitario al momento de la venta
	Qty       int
	LineTotal decimal.Decimal
	LineCost  decimal.Decimal
}

// Payment datos del cobro.
type Payment struct {
	Method     string
	PaidAmount decimal.Decimal
	Change     decimal.Decimal
}

// Order venta registrada en caja.
type Order struct {
	ID         string
	Number     string // POS-YYYYMMDD-NNNN
	Status     string
	Items      []OrderItem
	Subtotal   decimal.Decimal
	TaxRate    decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	TotalCost  decimal.Decimal
	Profit     decimal.Decimal
	Payment    Payment
	Note       string
	CreatedBy  string
	VoidedAt   *time.Time
	VoidedBy   string
	VoidReason string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
