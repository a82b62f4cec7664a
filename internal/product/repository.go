package product

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	// Update replaces the product's catalog fields. Stock is kept as stored
	// and copied back into product.
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error

	IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error)

	CreateVariant(ctx context.Context, variant *model.ProductVariant) error
	ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error)
	DeleteVariant(ctx context.Context, productID, variantID string) error
}

// Indexer mirrors the catalog into a search engine.
type Indexer interface {
	EnsureIndex(ctx context.Context) error
	Index(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id string) error
	// Search returns matching product ids in relevance order.
	Search(ctx context.Context, query string, from, size int) ([]string, int, error)
}
