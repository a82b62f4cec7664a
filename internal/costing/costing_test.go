package costing

import (
	"testing"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var ingredients = []model.Ingredient{
	{BaseModel: model.BaseModel{ID: "ing1"}, CostPerUnit: decimal.NewFromInt(150)},
	{BaseModel: model.BaseModel{ID: "ing2"}, CostPerUnit: decimal.NewFromInt(25)},
	{BaseModel: model.BaseModel{ID: "ing6"}, CostPerUnit: decimal.NewFromInt(120)},
}

func rl(id string, qty string) model.RecipeLine {
	return model.RecipeLine{IngredientID: id, Qty: decimal.RequireFromString(qty)}
}

func TestComputeCost(t *testing.T) {
	tests := []struct {
		name   string
		recipe []model.RecipeLine
		want   string
	}{
		{"no recipe", nil, "0"},
		{"espresso", []model.RecipeLine{rl("ing1", "18")}, "2700"},
		{"mocha", []model.RecipeLine{rl("ing1", "18"), rl("ing2", "150"), rl("ing6", "20")}, "8850"},
		{"missing ingredient contributes zero", []model.RecipeLine{rl("ing1", "18"), rl("gone", "99")}, "2700"},
		{"fractional qty", []model.RecipeLine{rl("ing2", "2.5")}, "62.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCost(tt.recipe, ingredients)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestProductMargin(t *testing.T) {
	recipes := model.Recipes{"p1": {rl("ing1", "18")}}
	espresso := model.Product{BaseModel: model.BaseModel{ID: "p1"}, Name: "Espresso", SellPrice: decimal.NewFromInt(18000)}
	fries := model.Product{BaseModel: model.BaseModel{ID: "p12"}, Name: "French Fries", SellPrice: decimal.NewFromInt(22000)}

	m := ProductMargin(espresso, recipes, ingredients)
	assert.True(t, m.HasRecipe)
	assert.Equal(t, "15300", m.Margin.String())
	assert.Equal(t, "85", m.MarginPct.String())

	m = ProductMargin(fries, recipes, ingredients)
	assert.False(t, m.HasRecipe)
	assert.True(t, m.HPP.IsZero())
	assert.Equal(t, "100", m.MarginPct.String())
}
