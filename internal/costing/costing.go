package costing

import (
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/shopspring/decimal"
)

// ComputeCost returns the cost of goods (HPP) for one unit made from recipe.
// Lines referring to unknown ingredients contribute nothing.
func ComputeCost(recipe []model.RecipeLine, ingredients []model.Ingredient) decimal.Decimal {
	costs := make(map[string]decimal.Decimal, len(ingredients))
	for _, ing := range ingredients {
		costs[ing.ID] = ing.CostPerUnit
	}

	total := decimal.Zero
	for _, line := range recipe {
		if c, ok := costs[line.IngredientID]; ok {
			total = total.Add(c.Mul(line.Qty))
		}
	}
	return total
}

type Margin struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	SellPrice   decimal.Decimal `json:"sell_price"`
	HPP         decimal.Decimal `json:"hpp"`
	Margin      decimal.Decimal `json:"margin"`
	// MarginPct is margin over sell price; zero when the sell price is zero.
	MarginPct decimal.Decimal `json:"margin_pct"`
	HasRecipe bool            `json:"has_recipe"`
}

func ProductMargin(p model.Product, recipes model.Recipes, ingredients []model.Ingredient) Margin {
	recipe := recipes[p.ID]
	hpp := ComputeCost(recipe, ingredients)
	m := Margin{
		ProductID:   p.ID,
		ProductName: p.Name,
		SellPrice:   p.SellPrice,
		HPP:         hpp,
		Margin:      p.SellPrice.Sub(hpp),
		MarginPct:   decimal.Zero,
		HasRecipe:   len(recipe) > 0,
	}
	if p.SellPrice.IsPositive() {
		m.MarginPct = m.Margin.Div(p.SellPrice).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return m
}
