package dto

import "github.com/shopspring/decimal"

type CreateIngredientInput struct {
	Name        string
	Unit        string
	CostPerUnit decimal.Decimal
}

type UpdateIngredientInput struct {
	ID          string
	Name        string
	Unit        string
	CostPerUnit decimal.Decimal
}

type RecipeLineInput struct {
	IngredientID string          `json:"ingredient_id"`
	Qty          decimal.Decimal `json:"qty"`
}

type SetRecipeInput struct {
	ProductID string
	Lines     []RecipeLineInput
}

// RecipeLineView is a recipe line resolved against the ingredient list.
// Missing is set when the ingredient no longer exists; its cost is zero.
type RecipeLineView struct {
	IngredientID string          `json:"ingredient_id"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Qty          decimal.Decimal `json:"qty"`
	CostPerUnit  decimal.Decimal `json:"cost_per_unit"`
	Cost         decimal.Decimal `json:"cost"`
	Missing      bool            `json:"missing,omitempty"`
}

type RecipeView struct {
	ProductID string           `json:"product_id"`
	Lines     []RecipeLineView `json:"lines"`
	HPP       decimal.Decimal  `json:"hpp"`
}
