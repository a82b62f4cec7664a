package printer

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/printer/dto"
)

type UseCase interface {
	AddPrinter(ctx context.Context, input *dto.PrinterInput) (*model.Printer, error)
	ListPrinters(ctx context.Context) ([]model.Printer, error)
	GetDefaultPrinter(ctx context.Context) (*model.Printer, error)
	UpdatePrinter(ctx context.Context, id string, input *dto.PrinterInput) (*model.Printer, error)
	SetDefault(ctx context.Context, id string) error
	DeletePrinter(ctx context.Context, id string) error
}
