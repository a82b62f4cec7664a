package cart

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

// Repository is the read side a cart needs from the register state.
type Repository interface {
	// FindProduct returns nil when the product does not exist.
	FindProduct(ctx context.Context, id string) (*model.Product, error)
	Settings(ctx context.Context) (model.StoreSettings, error)
}
