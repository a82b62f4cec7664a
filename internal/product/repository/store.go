package repository

import (
	"context"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pagination"
	"github.com/fekuna/omnipos-register-service/internal/product/dto"
	"github.com/fekuna/omnipos-register-service/internal/store"
)

type StoreRepository struct {
	store *store.Store
}

func NewStoreRepository(s *store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func skuTaken(d *store.Data, sku, excludeID string) bool {
	for _, p := range d.Products {
		if p.ID != excludeID && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}

// Create enforces SKU uniqueness and the category reference in the same
// update that inserts the product.
func (r *StoreRepository) Create(ctx context.Context, p *model.Product) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		if skuTaken(tx.Data, p.SKU, "") {
			return apperror.ErrSKUExists.WithDetail("%s", p.SKU)
		}
		if p.CategoryID != "" && tx.CategoryIndex(p.CategoryID) < 0 {
			return apperror.ErrCategoryNotFound.WithDetail("%s", p.CategoryID)
		}
		tx.Products = append(tx.Products, *p)
		tx.Touch(store.KeyProducts)
		return nil
	})
}

// FindByID returns nil when the product does not exist.
func (r *StoreRepository) FindByID(_ context.Context, id string) (*model.Product, error) {
	var found *model.Product
	r.store.View(func(d *store.Data) {
		if p, ok := d.FindProduct(id); ok {
			found = &p
		}
	})
	return found, nil
}

// FindByIDs keeps the order of ids and skips unknown ones.
func (r *StoreRepository) FindByIDs(_ context.Context, ids []string) ([]model.Product, error) {
	products := make([]model.Product, 0, len(ids))
	r.store.View(func(d *store.Data) {
		for _, id := range ids {
			if p, ok := d.FindProduct(id); ok {
				products = append(products, p)
			}
		}
	})
	return products, nil
}

func (r *StoreRepository) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	query := strings.ToLower(strings.TrimSpace(f.SearchQuery))

	r.store.View(func(d *store.Data) {
		for _, p := range d.Products {
			if f.CategoryID != "" && p.CategoryID != f.CategoryID {
				continue
			}
			if f.IsActive != nil && p.IsActive != *f.IsActive {
				continue
			}
			if query != "" &&
				!strings.Contains(strings.ToLower(p.Name), query) &&
				!strings.Contains(strings.ToLower(p.SKU), query) {
				continue
			}
			products = append(products, p)
		}
	})

	sortProducts(products, f.SortBy, strings.ToLower(f.SortOrder) == "desc")
	count := len(products)

	start, end := pagination.Bounds(count, f.Page, f.PageSize)
	products = products[start:end]
	if len(products) == 0 {
		products = []model.Product{}
	}
	return products, count, nil
}

// sortProducts keeps catalog order when sortBy is empty or unknown.
func sortProducts(products []model.Product, sortBy string, desc bool) {
	var less func(a, b model.Product) bool
	switch sortBy {
	case "name":
		less = func(a, b model.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case "price":
		less = func(a, b model.Product) bool { return a.SellPrice.LessThan(b.SellPrice) }
	case "stock":
		less = func(a, b model.Product) bool { return a.Stock < b.Stock }
	case "created_at":
		less = func(a, b model.Product) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		if desc {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func (r *StoreRepository) Update(ctx context.Context, p *model.Product) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.ProductIndex(p.ID)
		if i < 0 {
			return apperror.ErrProductNotFound.WithDetail("%s", p.ID)
		}
		if skuTaken(tx.Data, p.SKU, p.ID) {
			return apperror.ErrSKUExists.WithDetail("%s", p.SKU)
		}
		if p.CategoryID != "" && tx.CategoryIndex(p.CategoryID) < 0 {
			return apperror.ErrCategoryNotFound.WithDetail("%s", p.CategoryID)
		}

		p.Stock = tx.Products[i].Stock
		p.CreatedAt = tx.Products[i].CreatedAt
		tx.Products[i] = *p
		tx.Touch(store.KeyProducts)
		return nil
	})
}

// Delete drops the product with its variants and recipe. Ledger entries keep
// their own copy.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.ProductIndex(id)
		if i < 0 {
			return apperror.ErrProductNotFound.WithDetail("%s", id)
		}
		tx.Products = append(tx.Products[:i], tx.Products[i+1:]...)

		variants := tx.Variants[:0]
		for _, v := range tx.Variants {
			if v.ProductID != id {
				variants = append(variants, v)
			}
		}
		tx.Variants = variants
		delete(tx.Recipes, id)

		tx.Touch(store.KeyProducts, store.KeyVariants, store.KeyProductIngredients)
		return nil
	})
}

func (r *StoreRepository) IsSKUUnique(_ context.Context, sku, excludeID string) (bool, error) {
	unique := true
	r.store.View(func(d *store.Data) {
		unique = !skuTaken(d, sku, excludeID)
	})
	return unique, nil
}

func (r *StoreRepository) CreateVariant(ctx context.Context, v *model.ProductVariant) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		if tx.ProductIndex(v.ProductID) < 0 {
			return apperror.ErrProductNotFound.WithDetail("%s", v.ProductID)
		}
		tx.Variants = append(tx.Variants, *v)
		tx.Touch(store.KeyVariants)
		return nil
	})
}

func (r *StoreRepository) ListVariants(_ context.Context, productID string) ([]model.ProductVariant, error) {
	variants := []model.ProductVariant{}
	r.store.View(func(d *store.Data) {
		for _, v := range d.Variants {
			if v.ProductID == productID {
				variants = append(variants, v)
			}
		}
	})
	return variants, nil
}

func (r *StoreRepository) DeleteVariant(ctx context.Context, productID, variantID string) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.VariantIndex(variantID)
		if i < 0 || tx.Variants[i].ProductID != productID {
			return apperror.ErrVariantNotFound.WithDetail("%s", variantID)
		}
		tx.Variants = append(tx.Variants[:i], tx.Variants[i+1:]...)
		tx.Touch(store.KeyVariants)
		return nil
	})
}
