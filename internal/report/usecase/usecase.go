package usecase

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/costing"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/report"
	"github.com/fekuna/omnipos-register-service/internal/report/dto"
	"github.com/fekuna/omnipos-register-service/internal/report/export"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const defaultTopLimit = 5

var hundred = decimal.NewFromInt(100)

type reportUseCase struct {
	repo     report.Repository
	topLimit int
	logger   logger.ZapLogger
}

// NewReportUseCase builds the reporting reads. topLimit is used when a
// caller asks for top products without a limit.
func NewReportUseCase(repo report.Repository, topLimit int, log logger.ZapLogger) report.UseCase {
	if topLimit <= 0 {
		topLimit = defaultTopLimit
	}
	return &reportUseCase{repo: repo, topLimit: topLimit, logger: log}
}

func completed(txns []model.Transaction, r dto.Range) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Status == model.StatusCompleted && r.Contains(t.CreatedAt) {
			out = append(out, t)
		}
	}
	return out
}

func (u *reportUseCase) Today(ctx context.Context) (*dto.DailySales, error) {
	now := u.repo.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	txns, err := u.repo.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	today := completed(txns, dto.Range{From: start, To: start.AddDate(0, 0, 1)})

	revenue := decimal.Zero
	for _, t := range today {
		revenue = revenue.Add(t.GrandTotal)
	}
	return &dto.DailySales{
		Date:         start.Format("2006-01-02"),
		Count:        len(today),
		Revenue:      revenue,
		Transactions: today,
	}, nil
}

// TopProducts ranks products by units sold across all completed
// transactions. Ties keep the order in which products are first met while
// walking the ledger most-recent-first.
func (u *reportUseCase) TopProducts(ctx context.Context, limit int) ([]dto.TopProduct, error) {
	if limit <= 0 {
		limit = u.topLimit
	}
	txns, err := u.repo.Transactions(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var ranked []dto.TopProduct
	for _, t := range completed(txns, dto.Range{}) {
		for _, it := range t.Items {
			i, ok := index[it.Product.ID]
			if !ok {
				i = len(ranked)
				index[it.Product.ID] = i
				ranked = append(ranked, dto.TopProduct{Product: it.Product})
			}
			ranked[i].Sold += it.Qty
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Sold > ranked[j].Sold })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Revenue = ranked[i].Product.SellPrice.Mul(decimal.NewFromInt(int64(ranked[i].Sold)))
	}
	return ranked, nil
}

func (u *reportUseCase) LowStock(ctx context.Context) ([]model.Product, error) {
	products, err := u.repo.Products(ctx)
	if err != nil {
		return nil, err
	}
	out := []model.Product{}
	for i := range products {
		if products[i].IsLowStock() {
			out = append(out, products[i])
		}
	}
	return out, nil
}

// Summary aggregates completed transactions in r. Gross profit uses the
// buy and sell prices frozen into each transaction line.
func (u *reportUseCase) Summary(ctx context.Context, r dto.Range) (*dto.SalesSummary, error) {
	if !r.From.IsZero() && !r.To.IsZero() && !r.From.Before(r.To) {
		return nil, apperror.ErrInvalidDateRange
	}
	txns, err := u.repo.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	txns = completed(txns, r)

	summary := &dto.SalesSummary{
		TransactionCount: len(txns),
		Revenue:          decimal.Zero,
		GrossProfit:      decimal.Zero,
		Payments:         []dto.PaymentShare{},
		Cashiers:         []dto.CashierShare{},
	}
	payIdx := make(map[model.PaymentMethod]int)
	cashierIdx := make(map[string]int)
	paidTotal := decimal.Zero

	for _, t := range txns {
		summary.Revenue = summary.Revenue.Add(t.GrandTotal)
		for _, it := range t.Items {
			unit := it.Product.SellPrice.Sub(it.Product.BuyPrice)
			summary.GrossProfit = summary.GrossProfit.Add(unit.Mul(decimal.NewFromInt(int64(it.Qty))))
		}
		for _, p := range t.Payments {
			i, ok := payIdx[p.Method]
			if !ok {
				i = len(summary.Payments)
				payIdx[p.Method] = i
				summary.Payments = append(summary.Payments, dto.PaymentShare{Method: p.Method, Amount: decimal.Zero})
			}
			summary.Payments[i].Amount = summary.Payments[i].Amount.Add(p.Amount)
			paidTotal = paidTotal.Add(p.Amount)
		}
		i, ok := cashierIdx[t.CashierID]
		if !ok {
			i = len(summary.Cashiers)
			cashierIdx[t.CashierID] = i
			summary.Cashiers = append(summary.Cashiers, dto.CashierShare{CashierID: t.CashierID, CashierName: t.CashierName, Total: decimal.Zero})
		}
		summary.Cashiers[i].Total = summary.Cashiers[i].Total.Add(t.GrandTotal)
		summary.Cashiers[i].Count++
	}

	for i := range summary.Payments {
		summary.Payments[i].Percent = decimal.Zero
		if paidTotal.IsPositive() {
			summary.Payments[i].Percent = summary.Payments[i].Amount.Div(paidTotal).Mul(hundred).Round(2)
		}
	}
	sort.SliceStable(summary.Payments, func(i, j int) bool {
		return summary.Payments[i].Amount.GreaterThan(summary.Payments[j].Amount)
	})
	sort.SliceStable(summary.Cashiers, func(i, j int) bool {
		return summary.Cashiers[i].Total.GreaterThan(summary.Cashiers[j].Total)
	})
	return summary, nil
}

func (u *reportUseCase) ProductMargins(ctx context.Context) ([]costing.Margin, error) {
	products, recipes, ingredients, err := u.repo.Costing(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]costing.Margin, 0, len(products))
	for _, p := range products {
		out = append(out, costing.ProductMargin(p, recipes, ingredients))
	}
	return out, nil
}

// ExportTransactions writes completed transactions in r, oldest first, as
// an XLSX workbook.
func (u *reportUseCase) ExportTransactions(ctx context.Context, r dto.Range, w io.Writer) error {
	if !r.From.IsZero() && !r.To.IsZero() && !r.From.Before(r.To) {
		return apperror.ErrInvalidDateRange
	}
	txns, err := u.repo.Transactions(ctx)
	if err != nil {
		return err
	}
	txns = completed(txns, r)
	for i, j := 0, len(txns)-1; i < j; i, j = i+1, j-1 {
		txns[i], txns[j] = txns[j], txns[i]
	}

	if err := export.WriteTransactions(w, txns, u.repo.Now().Location()); err != nil {
		u.logger.Error("Failed to export transactions", zap.Error(err))
		return err
	}
	u.logger.Info("Exported transactions", zap.Int("count", len(txns)))
	return nil
}
