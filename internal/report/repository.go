package report

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

// Repository exposes read-only views of the ledger and catalog. Every
// method returns copies.
type Repository interface {
	// Transactions returns the ledger most-recent-first.
	Transactions(ctx context.Context) ([]model.Transaction, error)
	Products(ctx context.Context) ([]model.Product, error)
	Costing(ctx context.Context) ([]model.Product, model.Recipes, []model.Ingredient, error)
	Now() time.Time
}
