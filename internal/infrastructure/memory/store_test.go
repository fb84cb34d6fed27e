package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
)

func seedProduct(t *testing.T, s *memory.Store, id, name string, stock int, created time.Time) {
	t.Helper()
	require.NoError(t, s.Repos().Products.Create(context.Background(), &entity.Product{
		ID: id, Name: name, Category: "bebidas", Price: decimal.NewFromInt(5), Cost: decimal.NewFromInt(2),
		StockQty: stock, Active: true, CreatedAt: created, UpdatedAt: created,
	}))
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", "Latte", 10, time.Now())

	err := s.Run(ctx, func(r repository.Repos) error {
		p, err := r.Products.GetForUpdate(ctx, "p1")
		if err != nil {
			return err
		}
		p.StockQty += 5
		if err := r.Products.Update(ctx, p); err != nil {
			return err
		}
		return r.Movements.Create(ctx, &entity.StockMovement{ID: "m1", Type: entity.MovementTypeIn, ProductID: "p1", Qty: 5, CreatedAt: time.Now()})
	})
	require.NoError(t, err)

	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 15, p.StockQty)
	_, total, err := s.Repos().Movements.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}

func TestRun_ErrorDescartaTodo(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	seedProduct(t, s, "p1", "Latte", 10, time.Now())
	boom := errors.New("boom")

	err := s.Run(ctx, func(r repository.Repos) error {
		p, _ := r.Products.GetForUpdate(ctx, "p1")
		p.StockQty = 99
		_ = r.Products.Update(ctx, p)
		_ = r.Movements.Create(ctx, &entity.StockMovement{ID: "m1", ProductID: "p1", Qty: 89})
		_, _ = r.Sequences.Next(ctx, "POS-20251229")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 10, p.StockQty)
	_, total, _ := s.Repos().Movements.List(ctx, repository.MovementFilter{})
	assert.Zero(t, total)
	n, _ := s.Repos().Sequences.Next(ctx, "POS-20251229")
	assert.EqualValues(t, 1, n, "la secuencia de una transacción fallida no se consume")
}

func TestSequence_ConcurrenteSinHuecos(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	const workers = 50
	var wg sync.WaitGroup
	got := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Run(ctx, func(r repository.Repos) error {
				n, err := r.Sequences.Next(ctx, "POS-20251229")
				got <- n
				return err
			})
		}()
	}
	wg.Wait()
	close(got)

	seen := map[int64]bool{}
	for n := range got {
		assert.False(t, seen[n], "duplicado %d", n)
		seen[n] = true
	}
	for i := int64(1); i <= workers; i++ {
		assert.True(t, seen[i], "falta %d", i)
	}
}

func TestProducts_ListFiltroYOrden(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	base := time.Date(2025, 12, 29, 8, 0, 0, 0, time.UTC)
	seedProduct(t, s, "p1", "Latte", 1, base)
	seedProduct(t, s, "p2", "Latte Vainilla", 1, base.Add(time.Minute))
	seedProduct(t, s, "p3", "Croissant", 1, base.Add(2*time.Minute))

	items, total, err := s.Repos().Products.List(ctx, repository.ProductFilter{Search: "LATTE", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)

	items, _, err = s.Repos().Products.List(ctx, repository.ProductFilter{Search: "latte", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func TestProducts_DeleteInexistente(t *testing.T) {
	err := memory.New().Repos().Products.Delete(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducts_ListLowStock(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	now := time.Now()
	for _, p := range []entity.Product{
		{ID: "a", Name: "Leche", StockQty: 2, LowStockThreshold: 5, Active: true, CreatedAt: now},
		{ID: "b", Name: "Azúcar", StockQty: 5, LowStockThreshold: 5, Active: true, CreatedAt: now},
		{ID: "c", Name: "Café", StockQty: 0, LowStockThreshold: 0, Active: true, CreatedAt: now},
		{ID: "d", Name: "Té", StockQty: 1, LowStockThreshold: 3, Active: false, CreatedAt: now},
	} {
		p := p
		require.NoError(t, s.Repos().Products.Create(ctx, &p))
	}

	low, err := s.Repos().Products.ListLowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Azúcar", low[0].Name)
	assert.Equal(t, "Leche", low[1].Name)
}

func TestOrders_NumeroDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Repos().Orders
	require.NoError(t, repo.Create(ctx, &entity.Order{ID: "o1", Number: "POS-20251229-0001"}))
	err := repo.Create(ctx, &entity.Order{ID: "o2", Number: "POS-20251229-0001"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestOrders_SnapshotNoSeComparte(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Repos().Orders
	o := &entity.Order{ID: "o1", Number: "N1", Items: []entity.OrderItem{{Name: "Latte", Qty: 1}}}
	require.NoError(t, repo.Create(ctx, o))
	o.Items[0].Name = "cambiado"

	got, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, "Latte", got.Items[0].Name)
}

func TestOrders_Summary(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Repos().Orders
	day := time.Date(2025, 12, 29, 10, 0, 0, 0, time.UTC)
	d := decimal.RequireFromString
	orders := []entity.Order{
		{ID: "1", Number: "1", Status: entity.OrderStatusPaid, Total: d("20.23"), TotalCost: d("8"), Profit: d("9"), Payment: entity.Payment{Method: "cash"}, CreatedAt: day},
		{ID: "2", Number: "2", Status: entity.OrderStatusPaid, Total: d("10"), TotalCost: d("4"), Profit: d("6"), Payment: entity.Payment{Method: "card"}, CreatedAt: day},
		{ID: "3", Number: "3", Status: entity.OrderStatusVoid, Total: d("5"), Payment: entity.Payment{Method: "cash"}, CreatedAt: day},
		{ID: "4", Number: "4", Status: entity.OrderStatusPaid, Total: d("100"), Payment: entity.Payment{Method: "cash"}, CreatedAt: day.AddDate(0, 0, 1)},
	}
	for i := range orders {
		require.NoError(t, repo.Create(ctx, &orders[i]))
	}

	res, err := repo.Summary(ctx, day.Add(-time.Hour), day.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, res.PaidCount)
	assert.Equal(t, "30.23", res.PaidTotal.String())
	assert.Equal(t, "12", res.PaidCost.String())
	assert.Equal(t, 1, res.VoidCount)
	assert.Equal(t, "5", res.VoidTotal.String())
	require.Len(t, res.ByPayment, 2)
	assert.Equal(t, "cash", res.ByPayment[0].Method)
	assert.Equal(t, "20.23", res.ByPayment[0].Total.String())
	assert.Equal(t, "card", res.ByPayment[1].Method)
}

func TestUsers_UsernameUnico(t *testing.T) {
	ctx := context.Background()
	repo := memory.New().Repos().Users
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Username: "maria"}))
	assert.ErrorIs(t, repo.Create(ctx, &entity.User{ID: "u2", Username: "maria"}), domain.ErrDuplicate)

	u, err := repo.GetByUsername(ctx, "nadie")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSuppliers_OrdenPorNombreEInvoiceConProveedor(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	r := s.Repos()
	require.NoError(t, r.Suppliers.Create(ctx, &entity.Supplier{ID: "s2", Name: "Tostadores", Active: true}))
	require.NoError(t, r.Suppliers.Create(ctx, &entity.Supplier{ID: "s1", Name: "Lácteos Andinos", Active: true}))

	list, err := r.Suppliers.List(ctx, repository.SupplierFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s1", list[0].ID)

	require.NoError(t, r.Invoices.Create(ctx, &entity.PurchaseInvoice{ID: "i1", Number: "PINV-20251229-0001", SupplierID: "s2", Status: entity.InvoiceStatusDraft}))
	inv, err := r.Invoices.GetByID(ctx, "i1")
	require.NoError(t, err)
	require.NotNil(t, inv.Supplier)
	assert.Equal(t, "Tostadores", inv.Supplier.Name)
}
