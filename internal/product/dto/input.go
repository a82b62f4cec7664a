package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	Name       string
	SKU        string
	CategoryID string
	ImageURL   string
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	Stock      int
	MinStock   int
	IsActive   *bool // defaults to true
}

type UpdateProductInput struct {
	ID         string
	Name       string
	SKU        string
	CategoryID string
	ImageURL   string
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	MinStock   int
	IsActive   bool
}

type CreateVariantInput struct {
	ProductID       string
	Name            string
	PriceAdjustment decimal.Decimal
}
