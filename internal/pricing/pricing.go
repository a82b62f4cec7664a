// Package pricing derives cart totals: line discounts, the global discount,
// tax and service charge. Everything here is pure.
package pricing

import (
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals holds unrounded amounts. Use Rounded for display.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	ItemDiscounts  decimal.Decimal `json:"item_discounts"`
	GlobalDiscount decimal.Decimal `json:"global_discount"`
	TotalDiscount  decimal.Decimal `json:"total_discount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	ServiceCharge  decimal.Decimal `json:"service_charge"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	ItemCount      int             `json:"item_count"`
}

// Rounded rounds each component half away from zero to whole currency
// units. TotalDiscount and GrandTotal are recomposed from the rounded parts,
// so subtotal - discount + tax + service = grand total holds exactly.
func (t Totals) Rounded() Totals {
	r := Totals{
		Subtotal:       t.Subtotal.Round(0),
		ItemDiscounts:  t.ItemDiscounts.Round(0),
		GlobalDiscount: t.GlobalDiscount.Round(0),
		TaxAmount:      t.TaxAmount.Round(0),
		ServiceCharge:  t.ServiceCharge.Round(0),
		ItemCount:      t.ItemCount,
	}
	r.TotalDiscount = r.ItemDiscounts.Add(r.GlobalDiscount)
	r.GrandTotal = r.Subtotal.Sub(r.TotalDiscount).Add(r.TaxAmount).Add(r.ServiceCharge)
	return r
}

// UnitPriceFunc resolves the unit price of a cart line.
type UnitPriceFunc func(item model.CartItem) decimal.Decimal

// EmbeddedSellPrice prices a line at the sell price captured in its product
// snapshot. Variant price adjustments are not applied.
func EmbeddedSellPrice(item model.CartItem) decimal.Decimal {
	return item.Product.SellPrice
}

type Calculator struct {
	unitPrice UnitPriceFunc
}

func NewCalculator(unitPrice UnitPriceFunc) *Calculator {
	if unitPrice == nil {
		unitPrice = EmbeddedSellPrice
	}
	return &Calculator{unitPrice: unitPrice}
}

var defaultCalculator = NewCalculator(nil)

// ComputeTotals prices items with the embedded sell price.
func ComputeTotals(items []model.CartItem, settings model.StoreSettings, globalDiscountPct decimal.Decimal) Totals {
	return defaultCalculator.Compute(items, settings, globalDiscountPct)
}

func (c *Calculator) LineTotal(item model.CartItem) decimal.Decimal {
	return c.unitPrice(item).Mul(decimal.NewFromInt(int64(item.Qty)))
}

// LineDiscount never exceeds the line total and is never negative.
func (c *Calculator) LineDiscount(item model.CartItem) decimal.Decimal {
	lineTotal := c.LineTotal(item)
	if item.DiscountType == model.DiscountNominal {
		return decimal.Min(decimal.Max(item.DiscountValue, decimal.Zero), lineTotal)
	}
	return lineTotal.Mul(ClampPercent(item.DiscountValue)).Div(hundred)
}

func (c *Calculator) Compute(items []model.CartItem, settings model.StoreSettings, globalDiscountPct decimal.Decimal) Totals {
	var t Totals
	t.Subtotal = decimal.Zero
	t.ItemDiscounts = decimal.Zero
	for _, item := range items {
		t.Subtotal = t.Subtotal.Add(c.LineTotal(item))
		t.ItemDiscounts = t.ItemDiscounts.Add(c.LineDiscount(item))
		t.ItemCount += item.Qty
	}

	afterItemDiscount := t.Subtotal.Sub(t.ItemDiscounts)
	t.GlobalDiscount = afterItemDiscount.Mul(ClampPercent(globalDiscountPct)).Div(hundred)
	t.TotalDiscount = t.ItemDiscounts.Add(t.GlobalDiscount)
	afterAllDiscount := t.Subtotal.Sub(t.TotalDiscount)

	t.TaxAmount = decimal.Zero
	if settings.TaxEnabled {
		t.TaxAmount = afterAllDiscount.Mul(settings.TaxPercent).Div(hundred)
	}
	t.ServiceCharge = decimal.Zero
	if settings.ServiceChargeEnabled {
		t.ServiceCharge = afterAllDiscount.Mul(settings.ServiceChargePercent).Div(hundred)
	}
	t.GrandTotal = afterAllDiscount.Add(t.TaxAmount).Add(t.ServiceCharge)
	return t
}

// ClampPercent bounds pct to [0, 100].
func ClampPercent(pct decimal.Decimal) decimal.Decimal {
	return decimal.Min(decimal.Max(pct, decimal.Zero), hundred)
}
