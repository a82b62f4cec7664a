package cart

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/cart/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/shopspring/decimal"
)

// UseCase operates on the cart of one cashier session. Every call returns
// the cart priced with the current store settings.
type UseCase interface {
	GetCart(ctx context.Context, sessionID string) (*dto.CartView, error)
	AddItem(ctx context.Context, sessionID, productID string) (*dto.CartView, error)
	SetQty(ctx context.Context, sessionID, productID string, qty int) (*dto.CartView, error)
	SetLineDiscount(ctx context.Context, sessionID, productID string, dt model.DiscountType, value decimal.Decimal) (*dto.CartView, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (*dto.CartView, error)
	Clear(ctx context.Context, sessionID string) (*dto.CartView, error)
	SetGlobalDiscount(ctx context.Context, sessionID string, pct decimal.Decimal) (*dto.CartView, error)
}
