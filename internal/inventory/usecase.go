package inventory

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
)

type UseCase interface {
	GetProductInventory(ctx context.Context, productID string) (*dto.StockLevel, error)
	ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]dto.StockLevel, int, error)
	ListLowStock(ctx context.Context, page, pageSize int) ([]dto.StockLevel, int, error)
	AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*dto.StockLevel, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
