package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/settings"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

type settingsUseCase struct {
	repo   settings.Repository
	logger logger.ZapLogger
}

func NewSettingsUseCase(repo settings.Repository, log logger.ZapLogger) settings.UseCase {
	return &settingsUseCase{repo: repo, logger: log}
}

func (uc *settingsUseCase) GetSettings(ctx context.Context) (model.StoreSettings, error) {
	return uc.repo.Get(ctx)
}

func percentOK(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// UpdateSettings replaces the whole settings document. Totals of carts in
// progress pick up the new rates on their next read.
func (uc *settingsUseCase) UpdateSettings(ctx context.Context, s model.StoreSettings) (model.StoreSettings, error) {
	if strings.TrimSpace(s.StoreName) == "" {
		return model.StoreSettings{}, apperror.ErrNameRequired
	}
	if !percentOK(s.TaxPercent) {
		return model.StoreSettings{}, apperror.ErrInvalidPercent.WithDetail("tax_percent %s", s.TaxPercent)
	}
	if !percentOK(s.ServiceChargePercent) {
		return model.StoreSettings{}, apperror.ErrInvalidPercent.WithDetail("service_charge_percent %s", s.ServiceChargePercent)
	}
	if s.Receipt.PaperSize == "" {
		s.Receipt.PaperSize = model.Paper58mm
	}
	if !s.Receipt.PaperSize.Valid() {
		return model.StoreSettings{}, apperror.ErrInvalidPaperSize.WithDetail("%q", s.Receipt.PaperSize)
	}
	s.StoreName = strings.TrimSpace(s.StoreName)

	if err := uc.repo.Save(ctx, s); err != nil {
		return model.StoreSettings{}, err
	}
	uc.logger.Info("store settings updated",
		zap.Bool("tax_enabled", s.TaxEnabled),
		zap.String("tax_percent", s.TaxPercent.String()),
		zap.Bool("service_charge_enabled", s.ServiceChargeEnabled),
		zap.String("service_charge_percent", s.ServiceChargePercent.String()),
	)
	return s, nil
}
