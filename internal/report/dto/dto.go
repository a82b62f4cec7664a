package dto

import (
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/shopspring/decimal"
)

// Range is a half-open interval [From, To). A zero bound is unbounded.
type Range struct {
	From time.Time
	To   time.Time
}

func (r Range) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

type DailySales struct {
	Date         string              `json:"date"`
	Count        int                 `json:"count"`
	Revenue      decimal.Decimal     `json:"revenue"`
	Transactions []model.Transaction `json:"transactions"`
}

type TopProduct struct {
	Product model.Product   `json:"product"`
	Sold    int             `json:"sold"`
	Revenue decimal.Decimal `json:"revenue"`
}

type PaymentShare struct {
	Method  model.PaymentMethod `json:"method"`
	Amount  decimal.Decimal     `json:"amount"`
	Percent decimal.Decimal     `json:"percent"`
}

type CashierShare struct {
	CashierID   string          `json:"cashier_id"`
	CashierName string          `json:"cashier_name"`
	Total       decimal.Decimal `json:"total"`
	Count       int             `json:"count"`
}

type SalesSummary struct {
	TransactionCount int             `json:"transaction_count"`
	Revenue          decimal.Decimal `json:"revenue"`
	GrossProfit      decimal.Decimal `json:"gross_profit"`
	Payments         []PaymentShare  `json:"payments"`
	Cashiers         []CashierShare  `json:"cashiers"`
}
