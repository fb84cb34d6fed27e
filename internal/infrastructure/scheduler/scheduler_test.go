package scheduler_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/scheduler"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

type fakeSource struct {
	items []*entity.Product
	err   error
}

func (f fakeSource) LowStockProducts(context.Context) ([]*entity.Product, error) {
	return f.items, f.err
}

func TestSweepLowStock(t *testing.T) {
	src := fakeSource{items: []*entity.Product{
		{ID: "p1", Name: "Leche", StockQty: 1, LowStockThreshold: 3},
		{ID: "p2", Name: "Azúcar", StockQty: 0, LowStockThreshold: 2},
	}}
	n, err := scheduler.SweepLowStock(context.Background(), src, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestSweepLowStock_Error(t *testing.T) {
	_, err := scheduler.SweepLowStock(context.Background(), fakeSource{err: errors.New("db caída")}, logger.Nop())
	assert.Error(t, err)
}

func TestAddLowStockSweep(t *testing.T) {
	s := scheduler.New(logger.Nop(), time.UTC)
	assert.NoError(t, s.AddLowStockSweep("", fakeSource{}))
	assert.NoError(t, s.AddLowStockSweep("0 7 * * *", fakeSource{}))
	assert.Error(t, s.AddLowStockSweep("no es cron", fakeSource{}))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
