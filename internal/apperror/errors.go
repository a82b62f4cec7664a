package apperror

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindForbidden:
		return "FORBIDDEN"
	default:
		return "INTERNAL"
	}
}

// Error is an expected, caller-facing failure. Code doubles as the i18n
// message id.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

// Is matches on Code so errors carrying a detail still match their sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// WithDetail returns a copy of e annotated with detail.
func (e *Error) WithDetail(format string, args ...interface{}) *Error {
	cp := *e
	cp.Detail = fmt.Sprintf(format, args...)
	return &cp
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func Validation(code, message string) *Error   { return New(KindValidation, code, message) }
func NotFound(code, message string) *Error     { return New(KindNotFound, code, message) }
func Conflict(code, message string) *Error     { return New(KindConflict, code, message) }
func Unauthorized(code, message string) *Error { return New(KindUnauthorized, code, message) }
func Forbidden(code, message string) *Error    { return New(KindForbidden, code, message) }

// KindOf reports the kind of err, KindInternal for anything that is not an
// *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Cart and checkout.
var (
	ErrCartEmpty            = Validation("cart_empty", "cart is empty")
	ErrCartItemNotFound     = NotFound("cart_item_not_found", "product is not in the cart")
	ErrOutOfStock           = Validation("out_of_stock", "product is out of stock")
	ErrProductInactive      = Validation("product_inactive", "product is not active")
	ErrInvalidDiscountType  = Validation("invalid_discount_type", "discount type must be percent or nominal")
	ErrPaymentRequired      = Validation("payment_required", "at least one payment is required")
	ErrInvalidPaymentMethod = Validation("invalid_payment_method", "unknown payment method")
	ErrInvalidPaymentAmount = Validation("invalid_payment_amount", "payment amount must be greater than zero")
	ErrInsufficientPayment  = Validation("insufficient_payment", "payment amount is less than the grand total")
)

// Catalog.
var (
	ErrProductNotFound    = NotFound("product_not_found", "product not found")
	ErrVariantNotFound    = NotFound("variant_not_found", "variant not found")
	ErrCategoryNotFound   = NotFound("category_not_found", "category not found")
	ErrIngredientNotFound = NotFound("ingredient_not_found", "ingredient not found")
	ErrPrinterNotFound    = NotFound("printer_not_found", "printer not found")
	ErrCategoryInUse      = Conflict("category_in_use", "category still has products assigned")
	ErrSKUExists          = Conflict("sku_exists", "SKU already exists")
	ErrNameRequired       = Validation("name_required", "name is required")
	ErrSKURequired        = Validation("sku_required", "SKU is required")
	ErrSellPriceRequired  = Validation("sell_price_required", "sell price must be greater than zero")
	ErrNegativeAmount     = Validation("negative_amount", "amount must not be negative")
	ErrInvalidPercent     = Validation("invalid_percent", "percent must be between 0 and 100")
	ErrInvalidPaperSize   = Validation("invalid_paper_size", "paper size must be 58mm or 80mm")
	ErrInvalidQuantity    = Validation("invalid_quantity", "quantity must be greater than zero")
)

// Inventory, ledger and reports.
var (
	ErrInsufficientInventory = Validation("insufficient_inventory", "adjustment would make stock negative")
	ErrZeroAdjustment        = Validation("zero_adjustment", "quantity change must not be zero")
	ErrTransactionNotFound   = NotFound("transaction_not_found", "transaction not found")
	ErrInvalidDateRange      = Validation("invalid_date_range", "date range is invalid")
)

// Auth.
var (
	ErrInvalidCredentials = Unauthorized("invalid_credentials", "PIN is invalid or the account is inactive")
	ErrUnauthenticated    = Unauthorized("unauthenticated", "authentication required")
	ErrForbidden          = Forbidden("forbidden", "you do not have permission to access this resource")
)
