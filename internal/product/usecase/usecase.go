package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pagination"
	"github.com/fekuna/omnipos-register-service/internal/product"
	"github.com/fekuna/omnipos-register-service/internal/product/dto"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxSearchHits caps the ids fetched from Elastic before local filtering.
const maxSearchHits = 1000

type productUseCase struct {
	repo   product.Repository
	es     product.Indexer
	logger logger.ZapLogger
	now    func() time.Time
}

// NewProductUseCase wires the catalog. es may be nil, in which case search
// runs against the in-memory catalog only.
func NewProductUseCase(repo product.Repository, es product.Indexer, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		es:     es,
		logger: log,
		now:    time.Now,
	}
}

func validateProduct(name, sku string, buy, sell decimal.Decimal, stock, minStock int) error {
	if strings.TrimSpace(name) == "" {
		return apperror.ErrNameRequired
	}
	if strings.TrimSpace(sku) == "" {
		return apperror.ErrSKURequired
	}
	if !sell.IsPositive() {
		return apperror.ErrSellPriceRequired
	}
	if buy.IsNegative() || stock < 0 || minStock < 0 {
		return apperror.ErrNegativeAmount
	}
	return nil
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	if err := validateProduct(input.Name, input.SKU, input.BuyPrice, input.SellPrice, input.Stock, input.MinStock); err != nil {
		return nil, err
	}

	unique, err := uc.repo.IsSKUUnique(ctx, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperror.ErrSKUExists.WithDetail("%s", input.SKU)
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}
	now := uc.now()
	p := &model.Product{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:       strings.TrimSpace(input.Name),
		SKU:        strings.TrimSpace(input.SKU),
		CategoryID: input.CategoryID,
		ImageURL:   input.ImageURL,
		BuyPrice:   input.BuyPrice,
		SellPrice:  input.SellPrice,
		Stock:      input.Stock,
		MinStock:   input.MinStock,
		IsActive:   active,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Sync to Elastic
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	if err := uc.es.Index(ctx, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrProductNotFound.WithDetail("%s", id)
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	// Plain text queries go to Elastic when available; other filters apply
	// on top of the hits.
	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES search failed, falling back to catalog scan", zap.Error(err))
	}

	return uc.repo.FindAll(ctx, filters)
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	ids, _, err := uc.es.Search(ctx, filters.SearchQuery, 0, maxSearchHits)
	if err != nil {
		return nil, 0, err
	}
	hits, err := uc.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(hits))
	for _, p := range hits {
		if filters.CategoryID != "" && p.CategoryID != filters.CategoryID {
			continue
		}
		if filters.IsActive != nil && p.IsActive != *filters.IsActive {
			continue
		}
		products = append(products, p)
	}

	count := len(products)
	start, end := pagination.Bounds(count, filters.Page, filters.PageSize)
	return products[start:end], count, nil
}

// UpdateProduct edits catalog fields only. Stock moves through sales and
// inventory adjustments.
func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	if err := validateProduct(input.Name, input.SKU, input.BuyPrice, input.SellPrice, 0, input.MinStock); err != nil {
		return nil, err
	}

	p, err := uc.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(p.SKU, input.SKU) {
		unique, err := uc.repo.IsSKUUnique(ctx, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, apperror.ErrSKUExists.WithDetail("%s", input.SKU)
		}
	}

	// Update fields
	p.Name = strings.TrimSpace(input.Name)
	p.SKU = strings.TrimSpace(input.SKU)
	p.CategoryID = input.CategoryID
	p.ImageURL = input.ImageURL
	p.BuyPrice = input.BuyPrice
	p.SellPrice = input.SellPrice
	p.MinStock = input.MinStock
	p.IsActive = input.IsActive
	p.UpdatedAt = uc.now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Sync ES
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Remove from ES
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
			}
		}()
	}
	return nil
}

func (uc *productUseCase) AddVariant(ctx context.Context, input *dto.CreateVariantInput) (*model.ProductVariant, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, apperror.ErrNameRequired
	}
	now := uc.now()
	v := &model.ProductVariant{
		BaseModel:       model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		ProductID:       input.ProductID,
		Name:            strings.TrimSpace(input.Name),
		PriceAdjustment: input.PriceAdjustment,
	}
	if err := uc.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (uc *productUseCase) ListVariants(ctx context.Context, productID string) ([]model.ProductVariant, error) {
	if _, err := uc.GetProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.repo.ListVariants(ctx, productID)
}

func (uc *productUseCase) DeleteVariant(ctx context.Context, productID, variantID string) error {
	return uc.repo.DeleteVariant(ctx, productID, variantID)
}

func (uc *productUseCase) Reindex(ctx context.Context) error {
	if uc.es == nil {
		return nil
	}
	if err := uc.es.EnsureIndex(ctx); err != nil {
		return err
	}
	products, _, err := uc.repo.FindAll(ctx, &dto.ProductFilters{})
	if err != nil {
		return err
	}
	for i := range products {
		if err := uc.es.Index(ctx, &products[i]); err != nil {
			return err
		}
	}
	uc.logger.Info("product index rebuilt", zap.Int("products", len(products)))
	return nil
}
