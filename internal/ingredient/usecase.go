package ingredient

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/costing"
	"github.com/fekuna/omnipos-register-service/internal/ingredient/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
)

type UseCase interface {
	CreateIngredient(ctx context.Context, input *dto.CreateIngredientInput) (*model.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*model.Ingredient, error)
	ListIngredients(ctx context.Context) ([]model.Ingredient, error)
	UpdateIngredient(ctx context.Context, input *dto.UpdateIngredientInput) (*model.Ingredient, error)
	DeleteIngredient(ctx context.Context, id string) error

	SetRecipe(ctx context.Context, input *dto.SetRecipeInput) (*dto.RecipeView, error)
	GetRecipe(ctx context.Context, productID string) (*dto.RecipeView, error)
	GetProductHPP(ctx context.Context, productID string) (*costing.Margin, error)
}
