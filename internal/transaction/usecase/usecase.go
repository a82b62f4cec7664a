package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pricing"
	"github.com/fekuna/omnipos-register-service/internal/transaction"
	"github.com/fekuna/omnipos-register-service/internal/transaction/dto"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"go.uber.org/zap"
)

const publishTimeout = 10 * time.Second

type transactionUseCase struct {
	repo      transaction.Repository
	carts     *cart.Registry
	publisher transaction.Publisher
	logger    logger.ZapLogger
}

// NewTransactionUseCase wires checkout. publisher may be nil.
func NewTransactionUseCase(repo transaction.Repository, carts *cart.Registry, publisher transaction.Publisher, log logger.ZapLogger) transaction.UseCase {
	return &transactionUseCase{
		repo:      repo,
		carts:     carts,
		publisher: publisher,
		logger:    log,
	}
}

func validatePayments(payments []model.PaymentSplit) error {
	if len(payments) == 0 {
		return apperror.ErrPaymentRequired
	}
	for _, p := range payments {
		if !p.Method.Valid() {
			return apperror.ErrInvalidPaymentMethod.WithDetail("%q", p.Method)
		}
		if !p.Amount.IsPositive() {
			return apperror.ErrInvalidPaymentAmount.WithDetail("%s", p.Amount)
		}
	}
	return nil
}

// checkoutGuard rejects an empty cart and payments that do not cover the
// rounded grand total.
func checkoutGuard(payments []model.PaymentSplit) transaction.Guard {
	return func(snap cart.Snapshot, totals pricing.Totals) error {
		if len(snap.Items) == 0 {
			return apperror.ErrCartEmpty
		}
		paid := (&model.Transaction{Payments: payments}).PaidTotal()
		due := totals.Rounded().GrandTotal
		if paid.LessThan(due) {
			return apperror.ErrInsufficientPayment.WithDetail("paid %s, due %s", paid, due)
		}
		return nil
	}
}

func (uc *transactionUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (*model.Transaction, error) {
	if err := validatePayments(input.Payments); err != nil {
		return nil, err
	}

	c := uc.carts.Get(input.SessionID)
	txn, err := uc.repo.Commit(ctx, c, input.Cashier, input.Payments, checkoutGuard(input.Payments))
	if err != nil {
		return nil, err
	}

	uc.logger.Info("transaction completed",
		zap.String("invoice", txn.InvoiceNumber),
		zap.String("cashier_id", txn.CashierID),
		zap.String("grand_total", txn.GrandTotal.String()),
		zap.Int("lines", len(txn.Items)),
	)

	go uc.publish(txn)

	return txn, nil
}

func (uc *transactionUseCase) publish(txn *model.Transaction) {
	if uc.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := uc.publisher.Publish(ctx, txn); err != nil {
		uc.logger.Error("failed to publish transaction", zap.String("invoice", txn.InvoiceNumber), zap.Error(err))
	}
}

func (uc *transactionUseCase) ListTransactions(ctx context.Context, filters *dto.TransactionFilters) ([]model.Transaction, int, error) {
	if !filters.From.IsZero() && !filters.To.IsZero() && !filters.From.Before(filters.To) {
		return nil, 0, apperror.ErrInvalidDateRange
	}
	return uc.repo.FindAll(ctx, filters)
}

func (uc *transactionUseCase) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	txn, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.ErrTransactionNotFound.WithDetail("%s", id)
	}
	return txn, nil
}
