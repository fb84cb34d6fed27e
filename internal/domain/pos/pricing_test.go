package pos_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/pos"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(id, price, cost string) *entity.Product {
	return &entity.Product{ID: id, Name: "P" + id, Category: "coffee", Price: dec(price), Cost: dec(cost), Active: true}
}

func TestPriceCart_EjemploCompleto(t *testing.T) {
	totals, err := pos.PriceCart([]pos.CartLine{{Product: product("1", "8.50", "3.10"), Qty: 2}}, dec("0.19"))
	require.NoError(t, err)

	assert.Equal(t, "17", totals.Subtotal.String())
	assert.Equal(t, "3.23", totals.TaxAmount.String())
	assert.Equal(t, "20.23", totals.Total.String())
	assert.Equal(t, "6.2", totals.TotalCost.String())
	assert.Equal(t, "10.8", totals.Profit.String())

	require.Len(t, totals.Items, 1)
	assert.Equal(t, "P1", totals.Items[0].Name)
	assert.Equal(t, "coffee", totals.Items[0].Category)
	assert.Equal(t, "17", totals.Items[0].LineTotal.String())

	pay, err := pos.SettlePayment(totals.Total, dec("25"), "cash")
	require.NoError(t, err)
	assert.Equal(t, "4.77", pay.Change.String())
}

func TestPriceCart_RedondeaCadaPaso(t *testing.T) {
	lines := []pos.CartLine{
		{Product: product("1", "0.335", "0"), Qty: 3}, // 1.005 -> 1.01
		{Product: product("2", "1.115", "0"), Qty: 1}, // 1.115 -> 1.12
	}
	totals, err := pos.PriceCart(lines, dec("0.075"))
	require.NoError(t, err)

	sum := decimal.Zero
	for _, it := range totals.Items {
		sum = sum.Add(it.LineTotal)
	}
	assert.True(t, totals.Subtotal.Equal(pos.Round2(sum)))
	assert.Equal(t, "2.13", totals.Subtotal.String())
	// 2.13 * 0.075 = 0.15975 -> 0.16
	assert.Equal(t, "0.16", totals.TaxAmount.String())
	assert.True(t, totals.Total.Equal(pos.Round2(totals.Subtotal.Add(pos.Round2(totals.Subtotal.Mul(dec("0.075")))))))
}

func TestPriceCart_Rechazos(t *testing.T) {
	inactive := product("9", "1", "0")
	inactive.Active = false

	cases := map[string]struct {
		lines []pos.CartLine
		rate  string
		msg   string
	}{
		"carrito vacío":      {nil, "0", "Cart is empty"},
		"tax negativo":       {[]pos.CartLine{{Product: product("1", "1", "0"), Qty: 1}}, "-0.01", "taxRate must be between 0 and 1"},
		"tax mayor a uno":    {[]pos.CartLine{{Product: product("1", "1", "0"), Qty: 1}}, "1.01", "taxRate must be between 0 and 1"},
		"producto inactivo":  {[]pos.CartLine{{Product: inactive, Qty: 1}}, "0", "Some products not found or inactive"},
		"producto no existe": {[]pos.CartLine{{Product: nil, Qty: 1}}, "0", "Some products not found or inactive"},
		"qty cero":           {[]pos.CartLine{{Product: product("1", "1", "0"), Qty: 0}}, "0", "qty must be >= 1"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := pos.PriceCart(tc.lines, dec(tc.rate))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestPriceCart_TaxEnLimites(t *testing.T) {
	for _, rate := range []string{"0", "1"} {
		_, err := pos.PriceCart([]pos.CartLine{{Product: product("1", "2", "0"), Qty: 1}}, dec(rate))
		assert.NoError(t, err, rate)
	}
}

func TestValidateTaxRate_Escala(t *testing.T) {
	assert.NoError(t, pos.ValidateTaxRate(dec("0.190000")))
	assert.NoError(t, pos.ValidateTaxRate(dec("0.123456")))
	err := pos.ValidateTaxRate(dec("0.1234567"))
	require.Error(t, err)
	assert.Equal(t, "taxRate must have at most 6 decimals", err.Error())
}

func TestSettlePayment(t *testing.T) {
	total := dec("20.23")

	_, err := pos.SettlePayment(total, dec("20.22"), "cash")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	pay, err := pos.SettlePayment(total, dec("20.23"), "card")
	require.NoError(t, err)
	assert.True(t, pay.Change.IsZero())
	assert.Equal(t, entity.PaymentCard, pay.Method)

	pay, err = pos.SettlePayment(total, dec("30"), "bitcoin")
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, pay.Method)
	assert.Equal(t, "9.77", pay.Change.String())
}
