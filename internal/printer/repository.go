package printer

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

// Repository keeps at most one printer flagged as default.
type Repository interface {
	Create(ctx context.Context, p *model.Printer) error
	FindByID(ctx context.Context, id string) (*model.Printer, error)
	FindAll(ctx context.Context) ([]model.Printer, error)
	Update(ctx context.Context, p *model.Printer) error
	SetDefault(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
