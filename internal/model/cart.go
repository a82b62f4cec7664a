package model

import "github.com/shopspring/decimal"

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountNominal DiscountType = "nominal"
)

func (d DiscountType) Valid() bool {
	return d == DiscountPercent || d == DiscountNominal
}

// CartItem embeds a full snapshot of the product at the time it was added.
type CartItem struct {
	Product       Product         `json:"product"`
	Qty           int             `json:"qty"`
	DiscountType  DiscountType    `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}
