package export

import (
	"fmt"
	"io"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	SheetTransactions = "Transactions"
	SheetItems        = "Items"
)

var (
	transactionHeader = []interface{}{
		"Invoice", "Date", "Cashier", "Subtotal", "Discount", "Tax", "Service Charge", "Grand Total", "Paid", "Change", "Payment Methods", "Status",
	}
	itemHeader = []interface{}{
		"Invoice", "SKU", "Product", "Qty", "Unit Price", "Buy Price", "Discount Type", "Discount Value",
	}
)

// WriteTransactions renders txns as a workbook with one row per transaction
// and one row per line item. Times are shown in loc.
func WriteTransactions(w io.Writer, txns []model.Transaction, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetItems); err != nil {
		return fmt.Errorf("create items sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetTransactions, "A1", &transactionHeader); err != nil {
		return err
	}
	if err := f.SetSheetRow(SheetItems, "A1", &itemHeader); err != nil {
		return err
	}

	itemRow := 2
	for i, t := range txns {
		methods := ""
		for j, p := range t.Payments {
			if j > 0 {
				methods += ", "
			}
			methods += string(p.Method)
		}
		row := []interface{}{
			t.InvoiceNumber,
			t.CreatedAt.In(loc).Format("2006-01-02 15:04:05"),
			t.CashierName,
			t.Subtotal.InexactFloat64(),
			t.DiscountTotal.InexactFloat64(),
			t.TaxAmount.InexactFloat64(),
			t.ServiceCharge.InexactFloat64(),
			t.GrandTotal.InexactFloat64(),
			t.PaidTotal().InexactFloat64(),
			t.Change.InexactFloat64(),
			methods,
			string(t.Status),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetTransactions, cell, &row); err != nil {
			return err
		}

		for _, it := range t.Items {
			line := []interface{}{
				t.InvoiceNumber,
				it.Product.SKU,
				it.Product.Name,
				it.Qty,
				it.Product.SellPrice.InexactFloat64(),
				it.Product.BuyPrice.InexactFloat64(),
				string(it.DiscountType),
				it.DiscountValue.InexactFloat64(),
			}
			cell, err := excelize.CoordinatesToCellName(1, itemRow)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(SheetItems, cell, &line); err != nil {
				return err
			}
			itemRow++
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
