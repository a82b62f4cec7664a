package ingredient

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, ing *model.Ingredient) error
	FindByID(ctx context.Context, id string) (*model.Ingredient, error)
	FindAll(ctx context.Context) ([]model.Ingredient, error)
	Update(ctx context.Context, ing *model.Ingredient) error
	// Delete also strips the ingredient from every recipe.
	Delete(ctx context.Context, id string) error

	SetRecipe(ctx context.Context, productID string, lines []model.RecipeLine) error
	// Costing returns what a cost computation for productID needs. found is
	// false when the product does not exist.
	Costing(ctx context.Context, productID string) (p model.Product, recipe []model.RecipeLine, ingredients []model.Ingredient, found bool, err error)
}
