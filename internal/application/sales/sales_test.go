package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/sales"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var bogota = time.FixedZone("COT", -5*3600)

type fixture struct {
	store    *memory.Store
	checkout *sales.CheckoutUseCase
	orders   *sales.OrderUseCase
	methods  []string
}

// newFixture reloj fijo: 29/12/2025 10:00 hora de Bogotá.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.New()}
	ctx := context.Background()
	for _, p := range []*entity.Product{
		{ID: "latte", Name: "Latte", Category: "coffee", Price: dec("8.50"), Cost: dec("3.10"), StockQty: 4, Active: true},
		{ID: "croissant", Name: "Croissant", Category: "bakery", Price: dec("5"), Cost: dec("2"), Active: true},
		{ID: "viejo", Name: "Viejo", Category: "coffee", Price: dec("1"), Active: false},
	} {
		require.NoError(t, f.store.Repos().Products.Create(ctx, p))
	}
	clock := func() time.Time { return time.Date(2025, 12, 29, 10, 0, 0, 0, bogota) }
	var mu sync.Mutex
	rec := sales.RecorderFunc(func(m string) { mu.Lock(); f.methods = append(f.methods, m); mu.Unlock() })
	f.checkout = sales.NewCheckoutUseCase(f.store, sales.WithLocation(bogota), sales.WithClock(clock), sales.WithRecorder(rec))
	f.orders = sales.NewOrderUseCase(f.store, f.store.Repos().Orders, sales.WithLocation(bogota), sales.WithClock(clock))
	return f
}

func cart(paid string, items ...dto.CheckoutItem) dto.CheckoutRequest {
	return dto.CheckoutRequest{Items: items, TaxRate: dec("0.19"), Payment: dto.CheckoutPayment{Method: "cash", PaidAmount: dec(paid)}}
}

func TestCheckout_EjemploCompleto(t *testing.T) {
	f := newFixture(t)
	o, err := f.checkout.Checkout(context.Background(), "cajero-1", cart("25", dto.CheckoutItem{ProductID: "latte", Qty: 2}))
	require.NoError(t, err)

	assert.Equal(t, "POS-20251229-0001", o.Number)
	assert.Equal(t, entity.OrderStatusPaid, o.Status)
	assert.Equal(t, "17", o.Subtotal.String())
	assert.Equal(t, "3.23", o.TaxAmount.String())
	assert.Equal(t, "20.23", o.Total.String())
	assert.Equal(t, "4.77", o.Payment.Change.String())
	assert.Equal(t, "6.2", o.TotalCost.String())
	assert.Equal(t, "10.8", o.Profit.String())
	assert.Equal(t, "cajero-1", o.CreatedBy)
	assert.Equal(t, []string{"cash"}, f.methods)

	// checkout no mueve stock
	p, err := f.store.Repos().Products.GetByID(context.Background(), "latte")
	require.NoError(t, err)
	assert.Equal(t, 4, p.StockQty)
}

func TestCheckout_NumeracionConsecutiva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var wg sync.WaitGroup
	numbers := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o, err := f.checkout.Checkout(ctx, "u", cart("100", dto.CheckoutItem{ProductID: "croissant", Qty: 1}))
			if assert.NoError(t, err) {
				numbers <- o.Number
			}
		}()
	}
	wg.Wait()
	close(numbers)
	seen := map[string]bool{}
	for n := range numbers {
		seen[n] = true
	}
	assert.Len(t, seen, 10)
	assert.True(t, seen["POS-20251229-0001"])
	assert.True(t, seen["POS-20251229-0010"])
}

func TestCheckout_Rechazos(t *testing.T) {
	f := newFixture(t)
	cases := map[string]struct {
		in  dto.CheckoutRequest
		msg string
	}{
		"carrito vacío":      {cart("10"), "Cart is empty"},
		"producto inactivo":  {cart("10", dto.CheckoutItem{ProductID: "viejo", Qty: 1}), "Some products not found or inactive"},
		"producto no existe": {cart("10", dto.CheckoutItem{ProductID: "nope", Qty: 1}), "Some products not found or inactive"},
		"qty cero":           {cart("10", dto.CheckoutItem{ProductID: "latte", Qty: 0}), "qty must be >= 1"},
		"pago insuficiente":  {cart("20.22", dto.CheckoutItem{ProductID: "latte", Qty: 2}), "paidAmount must be >= total"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.checkout.Checkout(context.Background(), "u", tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tc.msg, err.Error())
		})
	}

	bad := cart("10", dto.CheckoutItem{ProductID: "latte", Qty: 1})
	bad.TaxRate = dec("1.5")
	_, err := f.checkout.Checkout(context.Background(), "u", bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// un rechazo no consume número
	o, err := f.checkout.Checkout(context.Background(), "u", cart("10", dto.CheckoutItem{ProductID: "croissant", Qty: 1}))
	require.NoError(t, err)
	assert.Equal(t, "POS-20251229-0001", o.Number)
	assert.Empty(t, f.methods[1:])
}

func TestVoid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o, err := f.checkout.Checkout(ctx, "u", cart("10", dto.CheckoutItem{ProductID: "croissant", Qty: 1}))
	require.NoError(t, err)

	v, err := f.orders.Void(ctx, "admin-1", o.ID, dto.VoidOrderRequest{Reason: " error de caja "})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusVoid, v.Status)
	assert.Equal(t, "admin-1", v.VoidedBy)
	assert.Equal(t, "error de caja", v.VoidReason)
	require.NotNil(t, v.VoidedAt)

	_, err = f.orders.Void(ctx, "admin-1", o.ID, dto.VoidOrderRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.orders.Void(ctx, "admin-1", "nope", dto.VoidOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetYList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first, err := f.checkout.Checkout(ctx, "u", cart("10", dto.CheckoutItem{ProductID: "croissant", Qty: 1}))
	require.NoError(t, err)
	_, err = f.checkout.Checkout(ctx, "u", cart("10", dto.CheckoutItem{ProductID: "croissant", Qty: 1}))
	require.NoError(t, err)
	_, err = f.orders.Void(ctx, "a", first.ID, dto.VoidOrderRequest{})
	require.NoError(t, err)

	got, err := f.orders.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Number, got.Number)
	_, err = f.orders.GetByID(ctx, "nope")
	assert.Equal(t, "Order not found", err.Error())

	res, err := f.orders.List(ctx, dto.OrderListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 20, res.Limit)
	assert.Equal(t, "POS-20251229-0002", res.Items[0].Number)

	res, err = f.orders.List(ctx, dto.OrderListQuery{Status: "void"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	res, err = f.orders.List(ctx, dto.OrderListQuery{From: "2025-12-29", To: "2025-12-29"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	res, err = f.orders.List(ctx, dto.OrderListQuery{From: "2025-12-30"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Total)

	_, err = f.orders.List(ctx, dto.OrderListQuery{From: "ayer"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.orders.List(ctx, dto.OrderListQuery{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a, err := f.checkout.Checkout(ctx, "u", cart("25", dto.CheckoutItem{ProductID: "latte", Qty: 2}))
	require.NoError(t, err)
	card := cart("10", dto.CheckoutItem{ProductID: "croissant", Qty: 1})
	card.Payment.Method = "card"
	_, err = f.checkout.Checkout(ctx, "u", card)
	require.NoError(t, err)
	v, err := f.checkout.Checkout(ctx, "u", cart("10", dto.CheckoutItem{ProductID: "croissant", Qty: 1}))
	require.NoError(t, err)
	_, err = f.orders.Void(ctx, "admin", v.ID, dto.VoidOrderRequest{})
	require.NoError(t, err)

	s, err := f.orders.Summary(ctx, dto.SalesSummaryQuery{})
	require.NoError(t, err)
	// 20.23 + 5.95
	assert.Equal(t, "26.18", s.NetSales.String())
	assert.Equal(t, 2, s.Paid.Count)
	assert.Equal(t, 1, s.Void.Count)
	assert.Equal(t, "5.95", s.Void.Total.String())
	require.Len(t, s.ByPayment, 2)
	assert.Equal(t, "cash", s.ByPayment[0].Method)
	assert.Equal(t, a.Total.String(), s.ByPayment[0].Total.String())
	assert.Equal(t, "card", s.ByPayment[1].Method)
	assert.Equal(t, "8.2", s.TotalCost.String())
	assert.Equal(t, "13.8", s.Profit.String())

	s, err = f.orders.Summary(ctx, dto.SalesSummaryQuery{From: "2025-12-01", To: "2025-12-28"})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Paid.Count)
	assert.True(t, s.NetSales.IsZero())

	// solo "to": resume ese día
	s, err = f.orders.Summary(ctx, dto.SalesSummaryQuery{To: "2025-12-29"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Paid.Count)
	assert.Equal(t, 29, s.From.Day())
	s, err = f.orders.Summary(ctx, dto.SalesSummaryQuery{To: "2020-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Paid.Count)

	_, err = f.orders.Summary(ctx, dto.SalesSummaryQuery{From: "2025-12-30", To: "2025-12-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

type fakeRenderer struct{ err error }

func (r fakeRenderer) RenderReceipt(_ context.Context, o *entity.Order) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-" + o.Number), nil
}

func TestReceipt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o, err := f.checkout.Checkout(ctx, "u", cart("10", dto.CheckoutItem{ProductID: "croissant", Qty: 1}))
	require.NoError(t, err)

	uc := sales.NewReceiptUseCase(f.store.Repos().Orders, fakeRenderer{})
	pdf, name, err := uc.Receipt(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-POS-20251229-0001", string(pdf))
	assert.Equal(t, "recibo_POS-20251229-0001.pdf", name)

	_, _, err = uc.Receipt(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	boom := errors.New("sin fuentes")
	_, _, err = sales.NewReceiptUseCase(f.store.Repos().Orders, fakeRenderer{err: boom}).Receipt(ctx, o.ID)
	assert.ErrorIs(t, err, boom)
}
