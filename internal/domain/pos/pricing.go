// Package pos contiene las reglas de cálculo de caja: totales, impuestos, cambio.
// Todas las operaciones monetarias redondean a 2 decimales (half-up) en cada paso,
// no solo al final, para que los totales sean reproducibles.
package pos

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
)

var one = decimal.NewFromInt(1)

// Round2 redondea a 2 decimales. Para montos no negativos equivale a half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CartLine producto resuelto + cantidad pedida.
type CartLine struct {
	Product *entity.Product
	Qty     int
}

// Totals resultado de valorizar un carrito.
type Totals struct {
	Items     []entity.OrderItem
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	TotalCost decimal.Decimal
	Profit    decimal.Decimal
}

// MaxTaxRateDecimals coincide con la escala de orders.tax_rate.
const MaxTaxRateDecimals = 6

// ValidateTaxRate exige taxRate ∈ [0,1] con a lo sumo 6 decimales.
func ValidateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(one) {
		return domain.Invalid("taxRate must be between 0 and 1")
	}
	if !rate.Round(MaxTaxRateDecimals).Equal(rate) {
		return domain.Invalid("taxRate must have at most 6 decimals")
	}
	return nil
}

// PriceCart valoriza las líneas y toma el snapshot de cada producto.
// Requiere carrito no vacío, productos activos y qty >= 1.
func PriceCart(lines []CartLine, taxRate decimal.Decimal) (*Totals, error) {
	if len(lines) == 0 {
		return nil, domain.Invalid("Cart is empty")
	}
	if err := ValidateTaxRate(taxRate); err != nil {
		return nil, err
	}
	items := make([]entity.OrderItem, 0, len(lines))
	subtotal := decimal.Zero
	totalCost := decimal.Zero
	for _, l := range lines {
		if l.Product == nil || !l.Product.Active {
			return nil, domain.Invalid("Some products not found or inactive")
		}
		if l.Qty < 1 {
			return nil, domain.Invalid("qty must be >= 1")
		}
		qty := decimal.NewFromInt(int64(l.Qty))
		item := entity.OrderItem{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Category:  l.Product.Category,
			Price:     l.Product.Price,
			Cost:      l.Product.Cost,
			Qty:       l.Qty,
			LineTotal: Round2(l.Product.Price.Mul(qty)),
			LineCost:  Round2(l.Product.Cost.Mul(qty)),
		}
		subtotal = subtotal.Add(item.LineTotal)
		totalCost = totalCost.Add(item.LineCost)
		items = append(items, item)
	}
	subtotal = Round2(subtotal)
	totalCost = Round2(totalCost)
	taxAmount := Round2(subtotal.Mul(taxRate))
	return &Totals{
		Items:     items,
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		TaxAmount: taxAmount,
		Total:     Round2(subtotal.Add(taxAmount)),
		TotalCost: totalCost,
		Profit:    Round2(subtotal.Sub(totalCost)),
	}, nil
}

// SettlePayment valida el monto pagado contra el total y calcula el cambio.
// Un método desconocido se registra como efectivo.
func SettlePayment(total, paidAmount decimal.Decimal, method string) (entity.Payment, error) {
	if paidAmount.LessThan(total) {
		return entity.Payment{}, domain.Invalid("paidAmount must be >= total")
	}
	return entity.Payment{
		Method:     entity.NormalizePaymentMethod(method),
		PaidAmount: Round2(paidAmount),
		Change:     Round2(paidAmount.Sub(total)),
	}, nil
}
