package repository

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/store"
)

type StoreRepository struct {
	store *store.Store
}

func NewStoreRepository(s *store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) Create(ctx context.Context, ing *model.Ingredient) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		tx.Ingredients = append(tx.Ingredients, *ing)
		tx.Touch(store.KeyIngredients)
		return nil
	})
}

// FindByID returns nil when the ingredient does not exist.
func (r *StoreRepository) FindByID(_ context.Context, id string) (*model.Ingredient, error) {
	var found *model.Ingredient
	r.store.View(func(d *store.Data) {
		if i := d.IngredientIndex(id); i >= 0 {
			ing := d.Ingredients[i]
			found = &ing
		}
	})
	return found, nil
}

func (r *StoreRepository) FindAll(_ context.Context) ([]model.Ingredient, error) {
	var out []model.Ingredient
	r.store.View(func(d *store.Data) {
		out = append([]model.Ingredient{}, d.Ingredients...)
	})
	return out, nil
}

func (r *StoreRepository) Update(ctx context.Context, ing *model.Ingredient) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.IngredientIndex(ing.ID)
		if i < 0 {
			return apperror.ErrIngredientNotFound.WithDetail("%s", ing.ID)
		}
		ing.CreatedAt = tx.Ingredients[i].CreatedAt
		tx.Ingredients[i] = *ing
		tx.Touch(store.KeyIngredients)
		return nil
	})
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.IngredientIndex(id)
		if i < 0 {
			return apperror.ErrIngredientNotFound.WithDetail("%s", id)
		}
		tx.Ingredients = append(tx.Ingredients[:i], tx.Ingredients[i+1:]...)

		for pid, lines := range tx.Recipes {
			kept := lines[:0]
			for _, l := range lines {
				if l.IngredientID != id {
					kept = append(kept, l)
				}
			}
			if len(kept) == 0 {
				delete(tx.Recipes, pid)
			} else {
				tx.Recipes[pid] = kept
			}
		}
		tx.Touch(store.KeyIngredients, store.KeyProductIngredients)
		return nil
	})
}

// SetRecipe replaces the recipe of a product. An empty recipe removes it.
func (r *StoreRepository) SetRecipe(ctx context.Context, productID string, lines []model.RecipeLine) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		if tx.ProductIndex(productID) < 0 {
			return apperror.ErrProductNotFound.WithDetail("%s", productID)
		}
		for _, l := range lines {
			if tx.IngredientIndex(l.IngredientID) < 0 {
				return apperror.ErrIngredientNotFound.WithDetail("%s", l.IngredientID)
			}
		}
		if len(lines) == 0 {
			delete(tx.Recipes, productID)
		} else {
			tx.Recipes[productID] = append([]model.RecipeLine(nil), lines...)
		}
		tx.Touch(store.KeyProductIngredients)
		return nil
	})
}

func (r *StoreRepository) Costing(_ context.Context, productID string) (model.Product, []model.RecipeLine, []model.Ingredient, bool, error) {
	var (
		p           model.Product
		found       bool
		recipe      []model.RecipeLine
		ingredients []model.Ingredient
	)
	r.store.View(func(d *store.Data) {
		p, found = d.FindProduct(productID)
		if !found {
			return
		}
		recipe = append([]model.RecipeLine(nil), d.Recipes[productID]...)
		ingredients = append([]model.Ingredient(nil), d.Ingredients...)
	})
	return p, recipe, ingredients, found, nil
}
