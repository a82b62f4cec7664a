package pricing

import (
	"testing"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func line(id string, sell int64, qty int, dt model.DiscountType, dv int64) model.CartItem {
	return model.CartItem{
		Product:       model.Product{BaseModel: model.BaseModel{ID: id}, SellPrice: d(sell)},
		Qty:           qty,
		DiscountType:  dt,
		DiscountValue: d(dv),
	}
}

func cafeSettings() model.StoreSettings {
	return model.StoreSettings{
		TaxEnabled:           true,
		TaxPercent:           d(11),
		ServiceChargeEnabled: true,
		ServiceChargePercent: d(5),
	}
}

func assertAmount(t *testing.T, want int64, got decimal.Decimal, name string) {
	t.Helper()
	assert.Truef(t, got.Equal(d(want)), "%s: want %d, got %s", name, want, got)
}

func TestComputeTotals_ReferenceTransactions(t *testing.T) {
	tests := []struct {
		name                                        string
		items                                       []model.CartItem
		subtotal, discount, tax, service, grandTotal int64
		itemCount                                   int
	}{
		{
			name: "espresso and fries",
			items: []model.CartItem{
				line("p1", 18000, 2, model.DiscountPercent, 0),
				line("p12", 22000, 1, model.DiscountPercent, 0),
			},
			subtotal: 58000, discount: 0, tax: 6380, service: 2900, grandTotal: 67280, itemCount: 3,
		},
		{
			name: "latte with line discount and matcha",
			items: []model.CartItem{
				line("p3", 28000, 3, model.DiscountPercent, 10),
				line("p6", 28000, 2, model.DiscountPercent, 0),
			},
			subtotal: 140000, discount: 8400, tax: 14476, service: 6580, grandTotal: 152656, itemCount: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, cafeSettings(), decimal.Zero)

			assertAmount(t, tt.subtotal, got.Subtotal, "subtotal")
			assertAmount(t, tt.discount, got.TotalDiscount, "discount")
			assertAmount(t, tt.tax, got.TaxAmount, "tax")
			assertAmount(t, tt.service, got.ServiceCharge, "service")
			assertAmount(t, tt.grandTotal, got.GrandTotal, "grand total")
			assert.Equal(t, tt.itemCount, got.ItemCount)
		})
	}
}

func TestComputeTotals_Deterministic(t *testing.T) {
	items := []model.CartItem{
		line("p1", 18000, 3, model.DiscountPercent, 33),
		line("p2", 25000, 1, model.DiscountNominal, 1234),
	}
	global := decimal.RequireFromString("7.5")

	first := ComputeTotals(items, cafeSettings(), global)
	second := ComputeTotals(items, cafeSettings(), global)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 33, items[0].DiscountValue.IntPart(), "input must not be mutated")
}

func TestComputeTotals_TaxAndServiceIndependent(t *testing.T) {
	items := []model.CartItem{line("p1", 10000, 1, model.DiscountPercent, 0)}

	noTax := cafeSettings()
	noTax.TaxEnabled = false
	noTax.TaxPercent = d(99)
	got := ComputeTotals(items, noTax, decimal.Zero)
	assertAmount(t, 0, got.TaxAmount, "tax")
	assertAmount(t, 500, got.ServiceCharge, "service")
	assertAmount(t, 10500, got.GrandTotal, "grand total")

	noService := cafeSettings()
	noService.ServiceChargeEnabled = false
	got = ComputeTotals(items, noService, decimal.Zero)
	assertAmount(t, 1100, got.TaxAmount, "tax")
	assertAmount(t, 0, got.ServiceCharge, "service")
}

func TestComputeTotals_DiscountsAreClamped(t *testing.T) {
	tests := []struct {
		name  string
		items []model.CartItem
		glob  int64
	}{
		{"percent over 100", []model.CartItem{line("p1", 18000, 1, model.DiscountPercent, 150)}, 0},
		{"nominal over line total", []model.CartItem{line("p1", 18000, 2, model.DiscountNominal, 50000)}, 0},
		{"negative nominal", []model.CartItem{line("p1", 18000, 1, model.DiscountNominal, -5000)}, 0},
		{"negative percent", []model.CartItem{line("p1", 18000, 1, model.DiscountPercent, -20)}, 0},
		{"global over 100", []model.CartItem{line("p1", 18000, 1, model.DiscountPercent, 0)}, 250},
		{"global negative", []model.CartItem{line("p1", 18000, 1, model.DiscountPercent, 0)}, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, cafeSettings(), d(tt.glob))

			assert.True(t, got.TotalDiscount.GreaterThanOrEqual(decimal.Zero))
			assert.True(t, got.TotalDiscount.LessThanOrEqual(got.Subtotal))
			assert.True(t, got.GrandTotal.GreaterThanOrEqual(decimal.Zero))
		})
	}
}

func TestComputeTotals_GlobalDiscountAppliesAfterLineDiscounts(t *testing.T) {
	items := []model.CartItem{line("p1", 20000, 1, model.DiscountNominal, 4000)}

	got := ComputeTotals(items, model.StoreSettings{}, d(10))

	assertAmount(t, 4000, got.ItemDiscounts, "item discounts")
	assertAmount(t, 1600, got.GlobalDiscount, "global discount")
	assertAmount(t, 5600, got.TotalDiscount, "total discount")
	assertAmount(t, 14400, got.GrandTotal, "grand total")
}

func TestComputeTotals_EmptyCart(t *testing.T) {
	got := ComputeTotals(nil, cafeSettings(), d(10))

	assert.True(t, got.GrandTotal.IsZero())
	assert.Zero(t, got.ItemCount)
}

func TestCalculator_CustomUnitPrice(t *testing.T) {
	// e.g. a variant-aware resolver
	calc := NewCalculator(func(item model.CartItem) decimal.Decimal {
		return item.Product.SellPrice.Add(d(3000))
	})
	items := []model.CartItem{line("p1", 18000, 2, model.DiscountPercent, 0)}

	got := calc.Compute(items, model.StoreSettings{}, decimal.Zero)

	assertAmount(t, 42000, got.Subtotal, "subtotal")
}

func TestTotals_Rounded(t *testing.T) {
	items := []model.CartItem{line("p1", 333, 1, model.DiscountPercent, 0)}

	got := ComputeTotals(items, cafeSettings(), decimal.Zero)

	assert.Equal(t, "36.63", got.TaxAmount.String())
	assert.Equal(t, "37", got.Rounded().TaxAmount.String())
	assert.Equal(t, "386.28", got.GrandTotal.String())
	// 333 + 37 + 17
	assert.Equal(t, "387", got.Rounded().GrandTotal.String())
}

func TestTotals_RoundedRecomposes(t *testing.T) {
	items := []model.CartItem{line("p1", 18000, 1, model.DiscountNominal, 13450)}

	got := ComputeTotals(items, cafeSettings(), decimal.Zero).Rounded()

	assertAmount(t, 18000, got.Subtotal, "subtotal")
	assertAmount(t, 13450, got.TotalDiscount, "discount")
	assertAmount(t, 501, got.TaxAmount, "tax 500.5")
	assertAmount(t, 228, got.ServiceCharge, "service 227.5")
	assertAmount(t, 5279, got.GrandTotal, "grand total")
	sum := got.Subtotal.Sub(got.TotalDiscount).Add(got.TaxAmount).Add(got.ServiceCharge)
	assert.True(t, sum.Equal(got.GrandTotal))
}
