package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo de la cafetería.
// Cost es el costo unitario vigente (último o promedio ponderado según cómo se contabilizó la compra);
// StockQty solo cambia vía reposición o contabilización de facturas de compra.
type Product struct {
	ID                string
	Name              string
	Category          string
	Price             decimal.Decimal // precio de venta
	Cost              decimal.Decimal // costo unitario
	StockQty          int
	LowStockThreshold int // 0 = sin alerta
	SKU               string
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el producto está en o por debajo de su umbral de alerta.
func (p *Product) IsLowStock() bool {
	return p.LowStockThreshold > 0 && p.StockQty <= p.LowStockThreshold
}
