package dto

import (
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pricing"
	"github.com/shopspring/decimal"
)

type LineView struct {
	model.CartItem
	LineTotal    decimal.Decimal `json:"line_total"`
	LineDiscount decimal.Decimal `json:"line_discount"`
}

// CartView is a read-only priced cart. Totals and line amounts are rounded
// to whole currency units.
type CartView struct {
	Items          []LineView      `json:"items"`
	GlobalDiscount decimal.Decimal `json:"global_discount_percent"`
	Totals         pricing.Totals  `json:"totals"`
}
