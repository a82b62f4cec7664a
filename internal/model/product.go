package model

import "github.com/shopspring/decimal"

type Product struct {
	BaseModel
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	CategoryID string          `json:"category_id"`
	ImageURL   string          `json:"image_url"`
	BuyPrice   decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal `json:"sell_price"`
	Stock      int             `json:"stock"`
	MinStock   int             `json:"min_stock"`
	IsActive   bool            `json:"is_active"`
}

// IsLowStock reports whether an active product sits at or below its
// minimum-stock threshold.
func (p *Product) IsLowStock() bool {
	return p.IsActive && p.Stock <= p.MinStock
}

// ProductVariant is stored and listed only. Pricing does not apply
// PriceAdjustment.
type ProductVariant struct {
	BaseModel
	ProductID       string          `json:"product_id"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}
