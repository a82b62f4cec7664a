package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/costing"
	"github.com/fekuna/omnipos-register-service/internal/ingredient"
	"github.com/fekuna/omnipos-register-service/internal/ingredient/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ingredientUseCase struct {
	repo   ingredient.Repository
	logger logger.ZapLogger
}

func NewIngredientUseCase(repo ingredient.Repository, log logger.ZapLogger) ingredient.UseCase {
	return &ingredientUseCase{repo: repo, logger: log}
}

func validateIngredient(name string, cost decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return apperror.ErrNameRequired
	}
	if cost.IsNegative() {
		return apperror.ErrNegativeAmount
	}
	return nil
}

func (uc *ingredientUseCase) CreateIngredient(ctx context.Context, input *dto.CreateIngredientInput) (*model.Ingredient, error) {
	if err := validateIngredient(input.Name, input.CostPerUnit); err != nil {
		return nil, err
	}
	now := time.Now()
	ing := &model.Ingredient{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        strings.TrimSpace(input.Name),
		Unit:        strings.TrimSpace(input.Unit),
		CostPerUnit: input.CostPerUnit,
	}
	if err := uc.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (uc *ingredientUseCase) GetIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	ing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, apperror.ErrIngredientNotFound.WithDetail("%s", id)
	}
	return ing, nil
}

func (uc *ingredientUseCase) ListIngredients(ctx context.Context) ([]model.Ingredient, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *ingredientUseCase) UpdateIngredient(ctx context.Context, input *dto.UpdateIngredientInput) (*model.Ingredient, error) {
	if err := validateIngredient(input.Name, input.CostPerUnit); err != nil {
		return nil, err
	}
	ing, err := uc.GetIngredient(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	ing.Name = strings.TrimSpace(input.Name)
	ing.Unit = strings.TrimSpace(input.Unit)
	ing.CostPerUnit = input.CostPerUnit
	ing.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (uc *ingredientUseCase) DeleteIngredient(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("ingredient deleted", zap.String("ingredient_id", id))
	return nil
}

func (uc *ingredientUseCase) SetRecipe(ctx context.Context, input *dto.SetRecipeInput) (*dto.RecipeView, error) {
	lines := make([]model.RecipeLine, 0, len(input.Lines))
	for _, l := range input.Lines {
		if !l.Qty.IsPositive() {
			return nil, apperror.ErrInvalidQuantity.WithDetail("%s", l.IngredientID)
		}
		lines = append(lines, model.RecipeLine{IngredientID: l.IngredientID, Qty: l.Qty})
	}
	if err := uc.repo.SetRecipe(ctx, input.ProductID, lines); err != nil {
		return nil, err
	}
	return uc.GetRecipe(ctx, input.ProductID)
}

func (uc *ingredientUseCase) GetRecipe(ctx context.Context, productID string) (*dto.RecipeView, error) {
	_, recipe, ingredients, found, err := uc.repo.Costing(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.ErrProductNotFound.WithDetail("%s", productID)
	}

	byID := make(map[string]model.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}
	view := &dto.RecipeView{
		ProductID: productID,
		Lines:     make([]dto.RecipeLineView, 0, len(recipe)),
		HPP:       costing.ComputeCost(recipe, ingredients),
	}
	for _, l := range recipe {
		lv := dto.RecipeLineView{IngredientID: l.IngredientID, Qty: l.Qty, CostPerUnit: decimal.Zero, Cost: decimal.Zero}
		if ing, ok := byID[l.IngredientID]; ok {
			lv.Name = ing.Name
			lv.Unit = ing.Unit
			lv.CostPerUnit = ing.CostPerUnit
			lv.Cost = ing.CostPerUnit.Mul(l.Qty)
		} else {
			lv.Missing = true
		}
		view.Lines = append(view.Lines, lv)
	}
	return view, nil
}

// GetProductHPP is zero for products without a recipe.
func (uc *ingredientUseCase) GetProductHPP(ctx context.Context, productID string) (*costing.Margin, error) {
	p, recipe, ingredients, found, err := uc.repo.Costing(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperror.ErrProductNotFound.WithDetail("%s", productID)
	}
	m := costing.ProductMargin(p, model.Recipes{productID: recipe}, ingredients)
	return &m, nil
}
