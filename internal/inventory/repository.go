package inventory

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
)

type Repository interface {
	// GetByProduct returns nil when the product does not exist.
	GetByProduct(ctx context.Context, productID string) (*dto.StockLevel, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]dto.StockLevel, int, error)

	// AdjustStockWithMovement applies movement.QuantityChange to the product
	// stock and logs the movement in the same update. QuantityBefore,
	// QuantityAfter and CreatedAt are filled in by the repository.
	AdjustStockWithMovement(ctx context.Context, movement *model.InventoryMovement) (*dto.StockLevel, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
