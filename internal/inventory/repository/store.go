package repository

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/inventory/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pagination"
	"github.com/fekuna/omnipos-register-service/internal/store"
)

type StoreRepository struct {
	store *store.Store
}

func NewStoreRepository(s *store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) GetByProduct(_ context.Context, productID string) (*dto.StockLevel, error) {
	var level *dto.StockLevel
	r.store.View(func(d *store.Data) {
		if p, ok := d.FindProduct(productID); ok {
			l := dto.NewStockLevel(p)
			level = &l
		}
	})
	return level, nil
}

// FindAll keeps catalog order.
func (r *StoreRepository) FindAll(_ context.Context, f *dto.InventoryFilters) ([]dto.StockLevel, int, error) {
	levels := []dto.StockLevel{}
	r.store.View(func(d *store.Data) {
		for i := range d.Products {
			p := &d.Products[i]
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.LowStock && !p.IsLowStock() {
				continue
			}
			levels = append(levels, dto.NewStockLevel(*p))
		}
	})
	start, end := pagination.Bounds(len(levels), f.Page, f.PageSize)
	return levels[start:end], len(levels), nil
}

func (r *StoreRepository) AdjustStockWithMovement(ctx context.Context, m *model.InventoryMovement) (*dto.StockLevel, error) {
	var level dto.StockLevel
	err := r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.ProductIndex(m.ProductID)
		if i < 0 {
			return apperror.ErrProductNotFound.WithDetail("%s", m.ProductID)
		}
		p := &tx.Products[i]
		after := p.Stock + m.QuantityChange
		if after < 0 {
			return apperror.ErrInsufficientInventory.WithDetail("%s has %d", p.Name, p.Stock)
		}

		m.QuantityBefore = p.Stock
		m.QuantityAfter = after
		m.CreatedAt = tx.Now()
		p.Stock = after
		p.UpdatedAt = tx.Now()

		tx.Movements = append([]model.InventoryMovement{*m}, tx.Movements...)
		tx.Touch(store.KeyProducts, store.KeyStockMovements)
		level = dto.NewStockLevel(*p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// ListMovements returns the most recent movements first.
func (r *StoreRepository) ListMovements(_ context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	out := []model.InventoryMovement{}
	r.store.View(func(d *store.Data) {
		for _, m := range d.Movements {
			if f.ProductID != "" && m.ProductID != f.ProductID {
				continue
			}
			if f.MovementType != "" && m.MovementType != f.MovementType {
				continue
			}
			if f.StartDate != nil && m.CreatedAt.Before(*f.StartDate) {
				continue
			}
			if f.EndDate != nil && !m.CreatedAt.Before(*f.EndDate) {
				continue
			}
			out = append(out, m)
		}
	})
	start, end := pagination.Bounds(len(out), f.Page, f.PageSize)
	return out[start:end], len(out), nil
}
