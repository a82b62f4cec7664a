package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/inventory"
	"github.com/fekuna/omnipos-register-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-register-service/internal/inventory/repository"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/storage/memory"
	"github.com/fekuna/omnipos-register-service/internal/store"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUseCase(t *testing.T) (inventory.UseCase, *store.Store) {
	t.Helper()
	s := store.New(memory.New(), logger.NewNop(), store.Options{SeedDemoData: true, PINHashCost: bcrypt.MinCost})
	require.NoError(t, s.Load(context.Background()))
	return NewInventoryUseCase(repository.NewStoreRepository(s), logger.NewNop()), s
}

func TestAdjustInventory(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	level, err := uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{ProductID: "p9", QuantityChange: 12, Reason: "restock", UserID: "2"})
	require.NoError(t, err)
	assert.Equal(t, 42, level.Stock)

	level, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{ProductID: "p9", QuantityChange: -40, Reason: "spoiled"})
	require.NoError(t, err)
	assert.Equal(t, 2, level.Stock)
	assert.True(t, level.IsLowStock)

	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{ProductID: "p9", QuantityChange: -3})
	assert.ErrorIs(t, err, apperror.ErrInsufficientInventory)
	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{ProductID: "p9"})
	assert.ErrorIs(t, err, apperror.ErrZeroAdjustment)
	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{ProductID: "p404", QuantityChange: 1})
	assert.ErrorIs(t, err, apperror.ErrProductNotFound)

	s.View(func(d *store.Data) {
		p, _ := d.FindProduct("p9")
		assert.Equal(t, 2, p.Stock, "rejected adjustments leave stock untouched")
		require.Len(t, d.Movements, 2)
		assert.Equal(t, -40, d.Movements[0].QuantityChange)
		assert.Equal(t, 42, d.Movements[0].QuantityBefore)
		assert.Equal(t, "manual_adjustment", d.Movements[0].ReferenceType)
		assert.Equal(t, "2", d.Movements[1].CreatedBy)
	})
}

func TestListLowStock(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	items, count, err := uc.ListLowStock(ctx, 1, 0)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, items)

	require.NoError(t, s.Update(ctx, func(tx *store.Tx) error {
		tx.Products[tx.ProductIndex("p14")].Stock = 5 // equal to min stock
		tx.Products[tx.ProductIndex("p12")].Stock = 3
		tx.Products[tx.ProductIndex("p12")].IsActive = false
		return nil
	}))

	items, count, err = uc.ListLowStock(ctx, 1, 0)
	require.NoError(t, err)
	require.Equal(t, 1, count)
	assert.Equal(t, "p14", items[0].ProductID)
}

func TestListInventoryAndMovements(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	items, count, err := uc.ListInventory(ctx, &dto.InventoryFilters{CategoryID: "cat5", Page: 1, PageSize: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, items, 1)
	assert.Equal(t, "p14", items[0].ProductID)

	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{ProductID: "p1", QuantityChange: 5})
	require.NoError(t, err)
	_, err = uc.AdjustInventory(ctx, &dto.AdjustInventoryInput{ProductID: "p2", QuantityChange: 5})
	require.NoError(t, err)

	movements, count, err := uc.ListMovements(ctx, &dto.MovementFilters{ProductID: "p2"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "p2", movements[0].ProductID)

	_, count, err = uc.ListMovements(ctx, &dto.MovementFilters{MovementType: model.MovementSale})
	require.NoError(t, err)
	assert.Zero(t, count)

	now := time.Now()
	_, _, err = uc.ListMovements(ctx, &dto.MovementFilters{StartDate: &now, EndDate: &now})
	assert.ErrorIs(t, err, apperror.ErrInvalidDateRange)

	level, err := uc.GetProductInventory(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 105, level.Stock)
}

func TestListInventory_PagePastEnd(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	items, count, err := uc.ListInventory(ctx, &dto.InventoryFilters{Page: 2305843009213693953, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, 15, count)
	assert.Empty(t, items)

	movements, _, err := uc.ListMovements(ctx, &dto.MovementFilters{Page: 2305843009213693953, PageSize: 4})
	require.NoError(t, err)
	assert.Empty(t, movements)
}
