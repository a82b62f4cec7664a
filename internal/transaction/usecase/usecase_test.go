package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/storage/memory"
	"github.com/fekuna/omnipos-register-service/internal/store"
	"github.com/fekuna/omnipos-register-service/internal/transaction"
	"github.com/fekuna/omnipos-register-service/internal/transaction/dto"
	"github.com/fekuna/omnipos-register-service/internal/transaction/repository"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakePublisher struct {
	mu   sync.Mutex
	sent []string
	done chan struct{}
}

func (f *fakePublisher) Publish(_ context.Context, txn *model.Transaction) error {
	f.mu.Lock()
	f.sent = append(f.sent, txn.InvoiceNumber)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fixture struct {
	uc    transaction.UseCase
	store *store.Store
	carts *cart.Registry
	clock *time.Time
}

func newFixture(t *testing.T, pub transaction.Publisher) *fixture {
	t.Helper()
	jakarta := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, jakarta)
	f := &fixture{carts: cart.NewRegistry(), clock: &now}

	f.store = store.New(memory.New(), logger.NewNop(), store.Options{
		SeedDemoData: true,
		PINHashCost:  bcrypt.MinCost,
		Location:     jakarta,
		Clock:        func() time.Time { return *f.clock },
	})
	require.NoError(t, f.store.Load(context.Background()))

	repo := repository.NewStoreRepository(f.store, nil)
	f.uc = NewTransactionUseCase(repo, f.carts, pub, logger.NewNop())
	return f
}

func (f *fixture) add(t *testing.T, session, productID string, qty int) {
	t.Helper()
	var p model.Product
	f.store.View(func(d *store.Data) {
		var ok bool
		p, ok = d.FindProduct(productID)
		require.True(t, ok)
	})
	m := f.carts.Get(session)
	m.AddItem(p)
	m.SetQty(productID, qty)
}

func cash(v int64) []model.PaymentSplit {
	return []model.PaymentSplit{{Method: model.PaymentCash, Amount: decimal.NewFromInt(v)}}
}

func stockOf(s *store.Store, id string) int {
	var stock int
	s.View(func(d *store.Data) {
		p, _ := d.FindProduct(id)
		stock = p.Stock
	})
	return stock
}

func TestCheckout_ReferenceTransaction(t *testing.T) {
	pub := &fakePublisher{done: make(chan struct{}, 1)}
	f := newFixture(t, pub)
	ctx := context.Background()

	f.add(t, "3", "p1", 2)
	f.add(t, "3", "p8", 1)

	txn, err := f.uc.Checkout(ctx, &dto.CheckoutInput{
		SessionID: "3",
		Cashier:   dto.Cashier{ID: "3", Name: "Kasir Dewi"},
		Payments:  cash(70000),
	})
	require.NoError(t, err)

	assert.Equal(t, "INV-20260314-001", txn.InvoiceNumber)
	assert.Equal(t, model.StatusCompleted, txn.Status)
	assert.True(t, txn.Subtotal.Equal(decimal.NewFromInt(58000)))
	assert.True(t, txn.TaxAmount.Equal(decimal.NewFromInt(6380)))
	assert.True(t, txn.ServiceCharge.Equal(decimal.NewFromInt(2900)))
	assert.True(t, txn.GrandTotal.Equal(decimal.NewFromInt(67280)))
	assert.True(t, txn.Change.Equal(decimal.NewFromInt(2720)))
	assert.Equal(t, "Kasir Dewi", txn.CashierName)

	assert.Equal(t, 98, stockOf(f.store, "p1"))
	assert.Equal(t, 54, stockOf(f.store, "p8"))

	snap := f.carts.Get("3").Snapshot()
	assert.Empty(t, snap.Items)
	assert.True(t, snap.GlobalDiscount.IsZero())

	f.store.View(func(d *store.Data) {
		require.Len(t, d.Transactions, 1)
		require.Len(t, d.Movements, 2)
		assert.Equal(t, model.MovementSale, d.Movements[0].MovementType)
		assert.Equal(t, -2, d.Movements[0].QuantityChange)
		assert.Equal(t, txn.ID, d.Movements[0].ReferenceID)
	})

	select {
	case <-pub.done:
	case <-time.After(time.Second):
		t.Fatal("transaction was not published")
	}
	assert.Equal(t, []string{"INV-20260314-001"}, pub.sent)
}

func TestCheckout_StoredTotalsRecompose(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.add(t, "3", "p1", 1)
	require.True(t, f.carts.Get("3").SetLineDiscount("p1", model.DiscountNominal, decimal.NewFromInt(13450)))

	// tax 500.5 and service 227.5 both round up
	_, err := f.uc.Checkout(ctx, &dto.CheckoutInput{
		SessionID: "3",
		Cashier:   dto.Cashier{ID: "3", Name: "Kasir Dewi"},
		Payments:  cash(5278),
	})
	assert.ErrorIs(t, err, apperror.ErrInsufficientPayment)

	txn, err := f.uc.Checkout(ctx, &dto.CheckoutInput{
		SessionID: "3",
		Cashier:   dto.Cashier{ID: "3", Name: "Kasir Dewi"},
		Payments:  cash(5279),
	})
	require.NoError(t, err)
	assert.Equal(t, "501", txn.TaxAmount.String())
	assert.Equal(t, "228", txn.ServiceCharge.String())
	assert.Equal(t, "5279", txn.GrandTotal.String())
	assert.True(t, txn.Change.IsZero())

	recomposed := txn.Subtotal.Sub(txn.DiscountTotal).Add(txn.TaxAmount).Add(txn.ServiceCharge)
	assert.True(t, recomposed.Equal(txn.GrandTotal), "%s != %s", recomposed, txn.GrandTotal)
}

func TestCheckout_InsufficientPaymentChangesNothing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.add(t, "3", "p1", 2)
	f.add(t, "3", "p8", 1)

	_, err := f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: "3", Cashier: dto.Cashier{ID: "3"}, Payments: cash(67279)})
	require.ErrorIs(t, err, apperror.ErrInsufficientPayment)

	assert.Equal(t, 100, stockOf(f.store, "p1"))
	assert.Len(t, f.carts.Get("3").Snapshot().Items, 2, "cart is kept for another attempt")
	f.store.View(func(d *store.Data) {
		assert.Empty(t, d.Transactions)
		assert.Empty(t, d.Movements)
		assert.Equal(t, 0, d.Invoice.Seq)
	})
}

func TestCheckout_SplitPayments(t *testing.T) {
	f := newFixture(t, nil)
	f.add(t, "3", "p1", 2)
	f.add(t, "3", "p8", 1)

	txn, err := f.uc.Checkout(context.Background(), &dto.CheckoutInput{
		SessionID: "3",
		Payments: []model.PaymentSplit{
			{Method: model.PaymentQRIS, Amount: decimal.NewFromInt(50000)},
			{Method: model.PaymentCash, Amount: decimal.NewFromInt(17280)},
		},
	})
	require.NoError(t, err)
	assert.Len(t, txn.Payments, 2)
	assert.True(t, txn.Change.IsZero())
}

func TestCheckout_Validation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: "3", Payments: cash(1000)})
	assert.ErrorIs(t, err, apperror.ErrCartEmpty)

	f.add(t, "3", "p1", 1)
	_, err = f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: "3"})
	assert.ErrorIs(t, err, apperror.ErrPaymentRequired)
	_, err = f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: "3", Payments: []model.PaymentSplit{{Method: "gold", Amount: decimal.NewFromInt(1)}}})
	assert.ErrorIs(t, err, apperror.ErrInvalidPaymentMethod)
	_, err = f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: "3", Payments: cash(0)})
	assert.ErrorIs(t, err, apperror.ErrInvalidPaymentAmount)
}

func TestCheckout_StockFloorsAtZero(t *testing.T) {
	f := newFixture(t, nil)
	f.add(t, "3", "p14", 40)

	_, err := f.uc.Checkout(context.Background(), &dto.CheckoutInput{SessionID: "3", Payments: cash(10_000_000)})
	require.NoError(t, err)

	assert.Equal(t, 0, stockOf(f.store, "p14"))
	f.store.View(func(d *store.Data) {
		assert.Equal(t, -15, d.Movements[0].QuantityChange)
		assert.Equal(t, 0, d.Movements[0].QuantityAfter)
	})
}

func TestCheckout_InvoiceNumbering(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	checkout := func() string {
		f.add(t, "3", "p1", 1)
		txn, err := f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: "3", Payments: cash(50000)})
		require.NoError(t, err)
		return txn.InvoiceNumber
	}

	assert.Equal(t, "INV-20260314-001", checkout())
	assert.Equal(t, "INV-20260314-002", checkout())

	// 23:30 UTC is already the next day in the store timezone.
	next := time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)
	*f.clock = next
	assert.Equal(t, "INV-20260315-001", checkout())

	list, count, err := f.uc.ListTransactions(ctx, &dto.TransactionFilters{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, "INV-20260315-001", list[0].InvoiceNumber, "ledger is most recent first")
}

func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	sessions := []string{"1", "2", "3", "4"}
	for _, s := range sessions {
		f.add(t, s, "p14", 6)
	}

	var wg sync.WaitGroup
	for _, s := range sessions {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			_, err := f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: s, Payments: cash(1_000_000)})
			assert.NoError(t, err)
		}(s)
	}
	wg.Wait()

	assert.Equal(t, 0, stockOf(f.store, "p14"))
	list, _, err := f.uc.ListTransactions(ctx, &dto.TransactionFilters{})
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, txn := range list {
		assert.False(t, seen[txn.InvoiceNumber], "duplicate invoice %s", txn.InvoiceNumber)
		seen[txn.InvoiceNumber] = true
	}
}

func TestTransactionQueries(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.add(t, "3", "p1", 1)
	txn, err := f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: "3", Cashier: dto.Cashier{ID: "3"}, Payments: cash(50000)})
	require.NoError(t, err)

	got, err := f.uc.GetTransaction(ctx, txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.InvoiceNumber, got.InvoiceNumber)

	got, err = f.uc.GetTransaction(ctx, txn.InvoiceNumber)
	require.NoError(t, err)
	assert.Equal(t, txn.ID, got.ID)

	_, err = f.uc.GetTransaction(ctx, "nope")
	assert.ErrorIs(t, err, apperror.ErrTransactionNotFound)

	_, count, err := f.uc.ListTransactions(ctx, &dto.TransactionFilters{CashierID: "4"})
	require.NoError(t, err)
	assert.Zero(t, count)
	_, count, err = f.uc.ListTransactions(ctx, &dto.TransactionFilters{PaymentMethod: model.PaymentCash})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	now := *f.clock
	_, _, err = f.uc.ListTransactions(ctx, &dto.TransactionFilters{From: now, To: now})
	assert.ErrorIs(t, err, apperror.ErrInvalidDateRange)
}

func TestListTransactions_PagePastEnd(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.add(t, "3", "p1", 1)
	_, err := f.uc.Checkout(ctx, &dto.CheckoutInput{SessionID: "3", Cashier: dto.Cashier{ID: "3"}, Payments: cash(50000)})
	require.NoError(t, err)

	txns, count, err := f.uc.ListTransactions(ctx, &dto.TransactionFilters{Page: 2305843009213693953, PageSize: 4})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Empty(t, txns)
}
