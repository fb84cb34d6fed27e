package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Si el denominador no es positivo se usa el costo de entrada. El resultado se redondea a 2 decimales.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return costoEntrada.Round(2)
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum).Round(2)
}

// ApplyEntry suma qty al stock del producto y actualiza su costo según mode
// ("last" sobrescribe, "weighted" promedia). El producto se modifica en sitio.
func ApplyEntry(p *entity.Product, qty int, unitCost decimal.Decimal, mode string) {
	oldStock := decimal.NewFromInt(int64(p.StockQty))
	switch mode {
	case entity.CostModeWeighted:
		p.Cost = CostCalculator(oldStock, p.Cost, decimal.NewFromInt(int64(qty)), unitCost)
	default:
		p.Cost = unitCost.Round(2)
	}
	p.StockQty += qty
}

// ValidCostMode indica si mode es un modo de costo soportado.
func ValidCostMode(mode string) bool {
	return mode == entity.CostModeLast || mode == entity.CostModeWeighted
}
