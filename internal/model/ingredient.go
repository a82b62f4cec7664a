package model

import "github.com/shopspring/decimal"

type Ingredient struct {
	BaseModel
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	CostPerUnit decimal.Decimal `json:"cost_per_unit"`
}

type RecipeLine struct {
	IngredientID string          `json:"ingredient_id"`
	Qty          decimal.Decimal `json:"qty"`
}

// Recipes maps product id to its ordered recipe lines.
type Recipes map[string][]RecipeLine
