package store

import (
	"github.com/fekuna/omnipos-register-service/internal/model"
)

// Document keys in the KV collaborator.
const (
	KeySettings           = "pos_settings"
	KeyTransactions       = "pos_transactions"
	KeyProducts           = "pos_products"
	KeyCategories         = "pos_categories"
	KeyVariants           = "pos_variants"
	KeyIngredients        = "pos_ingredients"
	KeyProductIngredients = "pos_product_ingredients"
	KeyPrinters           = "pos_printers"
	KeyInvoiceSequence    = "pos_invoice_sequence"
	KeyStockMovements     = "pos_stock_movements"
	KeyUsers              = "pos_users"
)

var AllKeys = []string{
	KeySettings,
	KeyTransactions,
	KeyProducts,
	KeyCategories,
	KeyVariants,
	KeyIngredients,
	KeyProductIngredients,
	KeyPrinters,
	KeyInvoiceSequence,
	KeyStockMovements,
	KeyUsers,
}

// Data is the whole register state. Transactions and Movements are kept
// most-recent-first.
type Data struct {
	Settings     model.StoreSettings
	Transactions []model.Transaction
	Products     []model.Product
	Categories   []model.Category
	Variants     []model.ProductVariant
	Ingredients  []model.Ingredient
	Recipes      model.Recipes
	Printers     []model.Printer
	Invoice      model.InvoiceSequence
	Movements    []model.InventoryMovement
	Users        []model.User
}

// doc returns a pointer to the field persisted under key.
func (d *Data) doc(key string) interface{} {
	switch key {
	case KeySettings:
		return &d.Settings
	case KeyTransactions:
		return &d.Transactions
	case KeyProducts:
		return &d.Products
	case KeyCategories:
		return &d.Categories
	case KeyVariants:
		return &d.Variants
	case KeyIngredients:
		return &d.Ingredients
	case KeyProductIngredients:
		return &d.Recipes
	case KeyPrinters:
		return &d.Printers
	case KeyInvoiceSequence:
		return &d.Invoice
	case KeyStockMovements:
		return &d.Movements
	case KeyUsers:
		return &d.Users
	}
	return nil
}

// Clone copies every collection so the copy can be mutated freely.
// Transaction line items are shared: ledger entries are never modified.
func (d *Data) Clone() *Data {
	cp := &Data{
		Settings:     d.Settings,
		Transactions: append([]model.Transaction(nil), d.Transactions...),
		Products:     append([]model.Product(nil), d.Products...),
		Categories:   append([]model.Category(nil), d.Categories...),
		Variants:     append([]model.ProductVariant(nil), d.Variants...),
		Ingredients:  append([]model.Ingredient(nil), d.Ingredients...),
		Recipes:      make(model.Recipes, len(d.Recipes)),
		Printers:     append([]model.Printer(nil), d.Printers...),
		Invoice:      d.Invoice,
		Movements:    append([]model.InventoryMovement(nil), d.Movements...),
		Users:        append([]model.User(nil), d.Users...),
	}
	for pid, lines := range d.Recipes {
		cp.Recipes[pid] = append([]model.RecipeLine(nil), lines...)
	}
	return cp
}

func (d *Data) normalize() {
	if d.Transactions == nil {
		d.Transactions = []model.Transaction{}
	}
	if d.Products == nil {
		d.Products = []model.Product{}
	}
	if d.Categories == nil {
		d.Categories = []model.Category{}
	}
	if d.Variants == nil {
		d.Variants = []model.ProductVariant{}
	}
	if d.Ingredients == nil {
		d.Ingredients = []model.Ingredient{}
	}
	if d.Recipes == nil {
		d.Recipes = model.Recipes{}
	}
	if d.Printers == nil {
		d.Printers = []model.Printer{}
	}
	if d.Movements == nil {
		d.Movements = []model.InventoryMovement{}
	}
	if d.Users == nil {
		d.Users = []model.User{}
	}
}

// ProductIndex returns the position of the product or -1.
func (d *Data) ProductIndex(id string) int {
	for i := range d.Products {
		if d.Products[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) FindProduct(id string) (model.Product, bool) {
	if i := d.ProductIndex(id); i >= 0 {
		return d.Products[i], true
	}
	return model.Product{}, false
}

func (d *Data) CategoryIndex(id string) int {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) IngredientIndex(id string) int {
	for i := range d.Ingredients {
		if d.Ingredients[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) PrinterIndex(id string) int {
	for i := range d.Printers {
		if d.Printers[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *Data) VariantIndex(id string) int {
	for i := range d.Variants {
		if d.Variants[i].ID == id {
			return i
		}
	}
	return -1
}
