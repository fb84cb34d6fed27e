package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
)

func TestSupplierUseCase_CRUD(t *testing.T) {
	uc := usecase.NewSupplierUseCase(memory.New().Repos().Suppliers)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "  "})
	require.Error(t, err)
	assert.Equal(t, "name is required", err.Error())

	b, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Tostadora Sur", Phone: "555"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Name: "Lácteos Andinos"})
	require.NoError(t, err)

	list, err := uc.List(ctx, dto.SupplierListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Lácteos Andinos", list.Items[0].Name)

	up, err := uc.Update(ctx, b.ID, dto.UpdateSupplierRequest{Email: strPtr("ventas@sur.co"), Active: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "ventas@sur.co", up.Email)
	assert.Equal(t, "555", up.Phone)
	assert.False(t, up.Active)

	list, err = uc.List(ctx, dto.SupplierListQuery{Active: boolPtr(true)})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, b.ID))
	err = uc.Delete(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Supplier not found", err.Error())
}
