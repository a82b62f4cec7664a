package usecase

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/cart"
	"github.com/fekuna/omnipos-register-service/internal/cart/dto"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/pricing"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type cartUseCase struct {
	repo     cart.Repository
	registry *cart.Registry
	calc     *pricing.Calculator
	logger   logger.ZapLogger
}

func NewCartUseCase(repo cart.Repository, registry *cart.Registry, calc *pricing.Calculator, log logger.ZapLogger) cart.UseCase {
	if calc == nil {
		calc = pricing.NewCalculator(nil)
	}
	return &cartUseCase{repo: repo, registry: registry, calc: calc, logger: log}
}

func (uc *cartUseCase) view(ctx context.Context, m *cart.Manager) (*dto.CartView, error) {
	settings, err := uc.repo.Settings(ctx)
	if err != nil {
		return nil, err
	}
	snap := m.Snapshot()

	v := &dto.CartView{
		Items:          make([]dto.LineView, 0, len(snap.Items)),
		GlobalDiscount: snap.GlobalDiscount,
		Totals:         uc.calc.Compute(snap.Items, settings, snap.GlobalDiscount).Rounded(),
	}
	for _, item := range snap.Items {
		v.Items = append(v.Items, dto.LineView{
			CartItem:     item,
			LineTotal:    uc.calc.LineTotal(item).Round(0),
			LineDiscount: uc.calc.LineDiscount(item).Round(0),
		})
	}
	return v, nil
}

func (uc *cartUseCase) GetCart(ctx context.Context, sessionID string) (*dto.CartView, error) {
	return uc.view(ctx, uc.registry.Get(sessionID))
}

// AddItem rejects unknown, inactive and out-of-stock products. Stock is not
// reserved; the commit floors it at zero.
func (uc *cartUseCase) AddItem(ctx context.Context, sessionID, productID string) (*dto.CartView, error) {
	p, err := uc.repo.FindProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrProductNotFound.WithDetail("%s", productID)
	}
	if !p.IsActive {
		return nil, apperror.ErrProductInactive.WithDetail("%s", p.Name)
	}
	if p.Stock <= 0 {
		return nil, apperror.ErrOutOfStock.WithDetail("%s", p.Name)
	}

	m := uc.registry.Get(sessionID)
	m.AddItem(*p)
	uc.logger.Debug("cart item added", zap.String("session", sessionID), zap.String("product_id", productID))
	return uc.view(ctx, m)
}

func (uc *cartUseCase) SetQty(ctx context.Context, sessionID, productID string, qty int) (*dto.CartView, error) {
	m := uc.registry.Get(sessionID)
	if !m.SetQty(productID, qty) {
		return nil, apperror.ErrCartItemNotFound.WithDetail("%s", productID)
	}
	return uc.view(ctx, m)
}

func (uc *cartUseCase) SetLineDiscount(ctx context.Context, sessionID, productID string, dt model.DiscountType, value decimal.Decimal) (*dto.CartView, error) {
	if !dt.Valid() {
		return nil, apperror.ErrInvalidDiscountType.WithDetail("%q", dt)
	}
	m := uc.registry.Get(sessionID)
	if !m.SetLineDiscount(productID, dt, value) {
		return nil, apperror.ErrCartItemNotFound.WithDetail("%s", productID)
	}
	return uc.view(ctx, m)
}

func (uc *cartUseCase) RemoveItem(ctx context.Context, sessionID, productID string) (*dto.CartView, error) {
	m := uc.registry.Get(sessionID)
	m.RemoveItem(productID)
	return uc.view(ctx, m)
}

func (uc *cartUseCase) Clear(ctx context.Context, sessionID string) (*dto.CartView, error) {
	m := uc.registry.Get(sessionID)
	m.Clear()
	return uc.view(ctx, m)
}

func (uc *cartUseCase) SetGlobalDiscount(ctx context.Context, sessionID string, pct decimal.Decimal) (*dto.CartView, error) {
	m := uc.registry.Get(sessionID)
	m.SetGlobalDiscount(pct)
	return uc.view(ctx, m)
}
