package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/report"
	"github.com/fekuna/omnipos-register-service/internal/report/dto"
	"github.com/fekuna/omnipos-register-service/internal/report/export"
	"github.com/fekuna/omnipos-register-service/internal/report/repository"
	"github.com/fekuna/omnipos-register-service/internal/storage/memory"
	"github.com/fekuna/omnipos-register-service/internal/store"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
)

var wib = time.FixedZone("WIB", 7*3600)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// newUseCase seeds a ledger of three transactions, most recent first:
// a voided one today, one by Budi today and one by Dewi yesterday.
func newUseCase(t *testing.T) (report.UseCase, *store.Store) {
	t.Helper()
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, wib)
	s := store.New(memory.New(), logger.NewNop(), store.Options{
		SeedDemoData: true,
		PINHashCost:  bcrypt.MinCost,
		Location:     wib,
		Clock:        func() time.Time { return now },
	})
	ctx := context.Background()
	require.NoError(t, s.Load(ctx))

	require.NoError(t, s.Update(ctx, func(tx *store.Tx) error {
		p1, _ := tx.FindProduct("p1")
		p8, _ := tx.FindProduct("p8")
		p14, _ := tx.FindProduct("p14")
		tx.Transactions = []model.Transaction{
			{
				ID: "t3", InvoiceNumber: "INV-20260314-002", CreatedAt: now.Add(-30 * time.Minute),
				CashierID: "3", CashierName: "Kasir Dewi",
				Items:      []model.CartItem{{Product: p14, Qty: 10}},
				GrandTotal: dec(380000),
				Payments:   []model.PaymentSplit{{Method: model.PaymentTransfer, Amount: dec(380000)}},
				Status:     model.StatusVoided,
			},
			{
				ID: "t2", InvoiceNumber: "INV-20260314-001", CreatedAt: now.Add(-time.Hour),
				CashierID: "4", CashierName: "Kasir Budi",
				Items:      []model.CartItem{{Product: p8, Qty: 3}, {Product: p1, Qty: 1}},
				GrandTotal: dec(90000),
				Payments:   []model.PaymentSplit{{Method: model.PaymentQRIS, Amount: dec(90000)}},
				Status:     model.StatusCompleted,
			},
			{
				ID: "t1", InvoiceNumber: "INV-20260313-001", CreatedAt: now.Add(-14 * time.Hour),
				CashierID: "3", CashierName: "Kasir Dewi",
				Items:      []model.CartItem{{Product: p1, Qty: 2}},
				GrandTotal: dec(40000),
				Payments:   []model.PaymentSplit{{Method: model.PaymentCash, Amount: dec(50000)}},
				Change:     dec(10000),
				Status:     model.StatusCompleted,
			},
		}
		tx.Touch(store.KeyTransactions)
		return nil
	}))
	return NewReportUseCase(repository.NewStoreRepository(s), 0, logger.NewNop()), s
}

func TestToday(t *testing.T) {
	uc, _ := newUseCase(t)

	today, err := uc.Today(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", today.Date)
	assert.Equal(t, 1, today.Count)
	assert.True(t, dec(90000).Equal(today.Revenue))
	require.Len(t, today.Transactions, 1)
	assert.Equal(t, "t2", today.Transactions[0].ID)
}

func TestTopProducts_TiesKeepLedgerOrder(t *testing.T) {
	uc, _ := newUseCase(t)

	top, err := uc.TopProducts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, top, 2, "voided transactions are ignored")
	assert.Equal(t, "p8", top[0].Product.ID)
	assert.Equal(t, 3, top[0].Sold)
	assert.True(t, dec(66000).Equal(top[0].Revenue))
	assert.Equal(t, "p1", top[1].Product.ID)
	assert.Equal(t, 3, top[1].Sold)

	top, err = uc.TopProducts(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "p8", top[0].Product.ID)
}

func TestSummary(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	sum, err := uc.Summary(ctx, dto.Range{})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TransactionCount)
	assert.True(t, dec(130000).Equal(sum.Revenue))
	// p1: (18000-5000)*3, p8: (22000-6000)*3
	assert.True(t, dec(87000).Equal(sum.GrossProfit), sum.GrossProfit.String())

	require.Len(t, sum.Payments, 2)
	assert.Equal(t, model.PaymentQRIS, sum.Payments[0].Method)
	assert.Equal(t, "64.29", sum.Payments[0].Percent.StringFixed(2))
	assert.Equal(t, model.PaymentCash, sum.Payments[1].Method)
	assert.True(t, dec(50000).Equal(sum.Payments[1].Amount))

	require.Len(t, sum.Cashiers, 2)
	assert.Equal(t, "Kasir Budi", sum.Cashiers[0].CashierName)
	assert.Equal(t, "3", sum.Cashiers[1].CashierID)
	assert.Equal(t, 1, sum.Cashiers[1].Count)

	yesterday := time.Date(2026, 3, 13, 0, 0, 0, 0, wib)
	sum, err = uc.Summary(ctx, dto.Range{From: yesterday, To: yesterday.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.TransactionCount)
	assert.True(t, dec(40000).Equal(sum.Revenue))

	_, err = uc.Summary(ctx, dto.Range{From: yesterday, To: yesterday})
	assert.ErrorIs(t, err, apperror.ErrInvalidDateRange)
}

func TestLowStockAndMargins(t *testing.T) {
	uc, s := newUseCase(t)
	ctx := context.Background()

	low, err := uc.LowStock(ctx)
	require.NoError(t, err)
	assert.Empty(t, low)

	require.NoError(t, s.Update(ctx, func(tx *store.Tx) error {
		tx.Products[tx.ProductIndex("p9")].Stock = 5
		return nil
	}))
	low, err = uc.LowStock(ctx)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "p9", low[0].ID)

	margins, err := uc.ProductMargins(ctx)
	require.NoError(t, err)
	require.Len(t, margins, 15)
	byID := map[string]int{}
	for i, m := range margins {
		byID[m.ProductID] = i
	}
	p2 := margins[byID["p2"]]
	assert.True(t, dec(6450).Equal(p2.HPP))
	assert.True(t, dec(18550).Equal(p2.Margin))
	assert.True(t, p2.HasRecipe)
	p4 := margins[byID["p4"]]
	assert.True(t, p4.HPP.IsZero())
	assert.False(t, p4.HasRecipe)
}

func TestExportTransactions(t *testing.T) {
	uc, _ := newUseCase(t)

	var buf bytes.Buffer
	require.NoError(t, uc.ExportTransactions(context.Background(), dto.Range{}, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetTransactions)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "INV-20260313-001", rows[1][0], "oldest first")
	assert.Equal(t, "INV-20260314-001", rows[2][0])
}
