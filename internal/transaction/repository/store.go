package repository

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pagination"
	"github.com/fekuna/omnipos-register-service/internal/pricing"
	"github.com/fekuna/omnipos-register-service/internal/store"
	"github.com/fekuna/omnipos-register-service/internal/transaction"
	"github.com/fekuna/omnipos-register-service/internal/transaction/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const referenceTransaction = "transaction"

type StoreRepository struct {
	store *store.Store
	calc  *pricing.Calculator
}

func NewStoreRepository(s *store.Store, calc *pricing.Calculator) *StoreRepository {
	if calc == nil {
		calc = pricing.NewCalculator(nil)
	}
	return &StoreRepository{store: s, calc: calc}
}

// Commit holds the state lock and then the cart lock. Cart observers are
// notified only after both are released.
func (r *StoreRepository) Commit(ctx context.Context, c *cart.Manager, cashier dto.Cashier, payments []model.PaymentSplit, guard transaction.Guard) (*model.Transaction, error) {
	var txn model.Transaction

	err := r.store.Update(ctx, func(tx *store.Tx) error {
		return c.Drain(func(snap cart.Snapshot) error {
			totals := r.calc.Compute(snap.Items, tx.Settings, snap.GlobalDiscount)
			if guard != nil {
				if err := guard(snap, totals); err != nil {
					return err
				}
			}

			now := tx.Now()
			seq, invoice := nextInvoice(tx.Invoice, now)
			rounded := totals.Rounded()

			txn = model.Transaction{
				ID:            uuid.New().String(),
				InvoiceNumber: invoice,
				CreatedAt:     now,
				CashierID:     cashier.ID,
				CashierName:   cashier.Name,
				Items:         append([]model.CartItem(nil), snap.Items...),
				Subtotal:      rounded.Subtotal,
				DiscountTotal: rounded.TotalDiscount,
				TaxAmount:     rounded.TaxAmount,
				ServiceCharge: rounded.ServiceCharge,
				GrandTotal:    rounded.GrandTotal,
				Payments:      append([]model.PaymentSplit(nil), payments...),
				Status:        model.StatusCompleted,
			}
			txn.Change = decimal.Max(txn.PaidTotal().Sub(txn.GrandTotal), decimal.Zero)

			tx.Transactions = append([]model.Transaction{txn}, tx.Transactions...)
			tx.Invoice = seq

			movements := make([]model.InventoryMovement, 0, len(snap.Items))
			for _, item := range snap.Items {
				i := tx.ProductIndex(item.Product.ID)
				if i < 0 {
					// deleted from the catalog while in the cart
					continue
				}
				before := tx.Products[i].Stock
				after := before - item.Qty
				if after < 0 {
					after = 0
				}
				tx.Products[i].Stock = after
				movements = append(movements, model.InventoryMovement{
					ID:             uuid.New().String(),
					ProductID:      item.Product.ID,
					MovementType:   model.MovementSale,
					QuantityChange: after - before,
					QuantityBefore: before,
					QuantityAfter:  after,
					ReferenceType:  referenceTransaction,
					ReferenceID:    txn.ID,
					Notes:          invoice,
					CreatedBy:      cashier.ID,
					CreatedAt:      now,
				})
			}
			tx.Movements = append(movements, tx.Movements...)

			tx.Touch(store.KeyTransactions, store.KeyProducts, store.KeyInvoiceSequence, store.KeyStockMovements)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	c.Notify()
	return &txn, nil
}

func matches(t *model.Transaction, f *dto.TransactionFilters) bool {
	if !f.From.IsZero() && t.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !t.CreatedAt.Before(f.To) {
		return false
	}
	if f.CashierID != "" && t.CashierID != f.CashierID {
		return false
	}
	if f.PaymentMethod != "" {
		for _, p := range t.Payments {
			if p.Method == f.PaymentMethod {
				return true
			}
		}
		return false
	}
	return true
}

// FindAll keeps ledger order, most recent first.
func (r *StoreRepository) FindAll(_ context.Context, f *dto.TransactionFilters) ([]model.Transaction, int, error) {
	out := []model.Transaction{}
	r.store.View(func(d *store.Data) {
		for i := range d.Transactions {
			if matches(&d.Transactions[i], f) {
				out = append(out, d.Transactions[i])
			}
		}
	})

	count := len(out)
	start, end := pagination.Bounds(count, f.Page, f.PageSize)
	return out[start:end], count, nil
}

// FindByID returns nil when no transaction has id.
func (r *StoreRepository) FindByID(_ context.Context, id string) (*model.Transaction, error) {
	var found *model.Transaction
	r.store.View(func(d *store.Data) {
		for i := range d.Transactions {
			if d.Transactions[i].ID == id || d.Transactions[i].InvoiceNumber == id {
				t := d.Transactions[i]
				found = &t
				return
			}
		}
	})
	return found, nil
}
