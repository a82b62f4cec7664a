package report

import (
	"context"
	"io"

	"github.com/fekuna/omnipos-register-service/internal/costing"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/report/dto"
)

type UseCase interface {
	Today(ctx context.Context) (*dto.DailySales, error)
	TopProducts(ctx context.Context, limit int) ([]dto.TopProduct, error)
	LowStock(ctx context.Context) ([]model.Product, error)
	Summary(ctx context.Context, r dto.Range) (*dto.SalesSummary, error)
	ProductMargins(ctx context.Context) ([]costing.Margin, error)
	ExportTransactions(ctx context.Context, r dto.Range, w io.Writer) error
}
