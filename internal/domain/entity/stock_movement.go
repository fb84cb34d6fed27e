package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn     = "in"     // entrada
	MovementTypeOut    = "out"    // salida
	MovementTypeAdjust = "adjust" // ajuste
)

// StockMovement es un registro append-only de cambio de stock. Nunca se edita ni se borra.
type StockMovement struct {
	ID        string
	Type      string
	ProductID string
	Qty       int // positivo para in
	UnitCost  decimal.Decimal
	Supplier  string
	Note      string
	Reference string // número de factura de compra, vacío en reposición manual
	CreatedBy string // UserID
	CreatedAt time.Time

	// Snapshot del producto al listar (no se persiste).
	ProductName     string
	ProductCategory string
}
