package transaction

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pricing"
	"github.com/fekuna/omnipos-register-service/internal/transaction/dto"
)

// Guard inspects the priced cart right before a commit, under both the state
// and the cart lock. Returning an error aborts the commit untouched.
type Guard func(snap cart.Snapshot, totals pricing.Totals) error

type Repository interface {
	// Commit turns the cart into a completed ledger entry: it numbers the
	// invoice, deducts stock floored at zero, records sale movements and
	// clears the cart, all in one state update.
	Commit(ctx context.Context, c *cart.Manager, cashier dto.Cashier, payments []model.PaymentSplit, guard Guard) (*model.Transaction, error)
	FindAll(ctx context.Context, filters *dto.TransactionFilters) ([]model.Transaction, int, error)
	FindByID(ctx context.Context, id string) (*model.Transaction, error)
}

// Publisher announces completed transactions to other systems.
type Publisher interface {
	Publish(ctx context.Context, txn *model.Transaction) error
	Close() error
}
