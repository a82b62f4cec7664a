package dto

import (
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

type Cashier struct {
	ID   string
	Name string
}

type CheckoutInput struct {
	SessionID string
	Cashier   Cashier
	Payments  []model.PaymentSplit
}

// TransactionFilters narrows the ledger. From is inclusive, To exclusive;
// zero values leave that side open.
type TransactionFilters struct {
	From          time.Time
	To            time.Time
	CashierID     string
	PaymentMethod model.PaymentMethod
	Page          int
	PageSize      int
}
