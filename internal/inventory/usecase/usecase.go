package usecase

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/inventory"
	"github.com/fekuna/omnipos-register-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const referenceManual = "manual_adjustment"

type inventoryUseCase struct {
	repo   inventory.Repository
	logger logger.ZapLogger
}

func NewInventoryUseCase(repo inventory.Repository, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetProductInventory(ctx context.Context, productID string) (*dto.StockLevel, error) {
	level, err := uc.repo.GetByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if level == nil {
		return nil, apperror.ErrProductNotFound.WithDetail("%s", productID)
	}
	return level, nil
}

func (uc *inventoryUseCase) ListInventory(ctx context.Context, filters *dto.InventoryFilters) ([]dto.StockLevel, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, page, pageSize int) ([]dto.StockLevel, int, error) {
	return uc.repo.FindAll(ctx, &dto.InventoryFilters{
		LowStock: true,
		Page:     page,
		PageSize: pageSize,
	})
}

// AdjustInventory moves stock up or down. It never lets stock go negative;
// only sales are floored at zero.
func (uc *inventoryUseCase) AdjustInventory(ctx context.Context, input *dto.AdjustInventoryInput) (*dto.StockLevel, error) {
	if input.QuantityChange == 0 {
		return nil, apperror.ErrZeroAdjustment
	}
	refType := input.ReferenceType
	if refType == "" {
		refType = referenceManual
	}

	movement := &model.InventoryMovement{
		ID:             uuid.New().String(),
		ProductID:      input.ProductID,
		MovementType:   model.MovementAdjustment,
		QuantityChange: input.QuantityChange,
		ReferenceType:  refType,
		ReferenceID:    input.ReferenceID,
		Notes:          input.Reason,
		CreatedBy:      input.UserID,
	}

	level, err := uc.repo.AdjustStockWithMovement(ctx, movement)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("inventory adjusted",
		zap.String("product_id", input.ProductID),
		zap.Int("change", input.QuantityChange),
		zap.Int("stock", level.Stock),
		zap.String("reference_type", refType),
	)
	if level.IsLowStock {
		uc.logger.Warn("product at or below minimum stock",
			zap.String("product_id", level.ProductID),
			zap.Int("stock", level.Stock),
			zap.Int("min_stock", level.MinStock),
		)
	}
	return level, nil
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	if filters.StartDate != nil && filters.EndDate != nil && !filters.StartDate.Before(*filters.EndDate) {
		return nil, 0, apperror.ErrInvalidDateRange
	}
	return uc.repo.ListMovements(ctx, filters)
}
