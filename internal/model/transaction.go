package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentQRIS     PaymentMethod = "qris"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentEWallet  PaymentMethod = "ewallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentQRIS, PaymentTransfer, PaymentEWallet:
		return true
	}
	return false
}

type TransactionStatus string

const (
	StatusCompleted TransactionStatus = "completed"
	// StatusVoided is reserved; nothing transitions a transaction into it.
	StatusVoided TransactionStatus = "voided"
)

type PaymentSplit struct {
	Method PaymentMethod   `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// Transaction is an immutable ledger entry. Items is a deep copy of the cart
// at commit time.
type Transaction struct {
	ID            string            `json:"id"`
	InvoiceNumber string            `json:"invoice_number"`
	CreatedAt     time.Time         `json:"created_at"`
	CashierID     string            `json:"cashier_id"`
	CashierName   string            `json:"cashier_name"`
	Items         []CartItem        `json:"items"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	DiscountTotal decimal.Decimal   `json:"discount_total"`
	TaxAmount     decimal.Decimal   `json:"tax_amount"`
	ServiceCharge decimal.Decimal   `json:"service_charge"`
	GrandTotal    decimal.Decimal   `json:"grand_total"`
	Payments      []PaymentSplit    `json:"payments"`
	Change        decimal.Decimal   `json:"change"`
	Status        TransactionStatus `json:"status"`
}

func (t *Transaction) PaidTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range t.Payments {
		sum = sum.Add(p.Amount)
	}
	return sum
}

// InvoiceSequence is the per-day invoice counter. Date is YYYYMMDD in the
// store timezone.
type InvoiceSequence struct {
	Date string `json:"date"`
	Seq  int    `json:"seq"`
}
