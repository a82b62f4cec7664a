package repository

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/category/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/store"
)

type StoreRepository struct {
	store *store.Store
}

func NewStoreRepository(s *store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) Create(ctx context.Context, c *model.Category) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		tx.Categories = append(tx.Categories, *c)
		tx.Touch(store.KeyCategories)
		return nil
	})
}

// FindByID returns nil when the category does not exist.
func (r *StoreRepository) FindByID(_ context.Context, id string) (*model.Category, error) {
	var found *model.Category
	r.store.View(func(d *store.Data) {
		if i := d.CategoryIndex(id); i >= 0 {
			c := d.Categories[i]
			found = &c
		}
	})
	return found, nil
}

func (r *StoreRepository) FindAll(_ context.Context) ([]dto.CategoryWithCount, error) {
	var out []dto.CategoryWithCount
	r.store.View(func(d *store.Data) {
		counts := make(map[string]int, len(d.Categories))
		for _, p := range d.Products {
			counts[p.CategoryID]++
		}
		out = make([]dto.CategoryWithCount, 0, len(d.Categories))
		for _, c := range d.Categories {
			out = append(out, dto.CategoryWithCount{Category: c, ProductCount: counts[c.ID]})
		}
	})
	return out, nil
}

func (r *StoreRepository) Update(ctx context.Context, c *model.Category) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.CategoryIndex(c.ID)
		if i < 0 {
			return apperror.ErrCategoryNotFound.WithDetail("%s", c.ID)
		}
		c.CreatedAt = tx.Categories[i].CreatedAt
		tx.Categories[i] = *c
		tx.Touch(store.KeyCategories)
		return nil
	})
}

// Delete refuses while any product still references the category. The check
// and the removal happen in one update.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.CategoryIndex(id)
		if i < 0 {
			return apperror.ErrCategoryNotFound.WithDetail("%s", id)
		}
		n := 0
		for _, p := range tx.Products {
			if p.CategoryID == id {
				n++
			}
		}
		if n > 0 {
			return apperror.ErrCategoryInUse.WithDetail("%d product(s)", n)
		}
		tx.Categories = append(tx.Categories[:i], tx.Categories[i+1:]...)
		tx.Touch(store.KeyCategories)
		return nil
	})
}
