package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/printer"
	"github.com/fekuna/omnipos-register-service/internal/printer/dto"
	"github.com/fekuna/omnipos-register-service/pkg/logger"
	"github.com/google/uuid"
)

type printerUseCase struct {
	repo   printer.Repository
	logger logger.ZapLogger
}

func NewPrinterUseCase(repo printer.Repository, log logger.ZapLogger) printer.UseCase {
	return &printerUseCase{repo: repo, logger: log}
}

func validate(input *dto.PrinterInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperror.ErrNameRequired
	}
	if !input.PaperSize.Valid() {
		return apperror.ErrInvalidPaperSize.WithDetail("%q", input.PaperSize)
	}
	return nil
}

func (uc *printerUseCase) AddPrinter(ctx context.Context, input *dto.PrinterInput) (*model.Printer, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &model.Printer{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      strings.TrimSpace(input.Name),
		Address:   strings.TrimSpace(input.Address),
		PaperSize: input.PaperSize,
		IsDefault: input.IsDefault,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *printerUseCase) ListPrinters(ctx context.Context) ([]model.Printer, error) {
	return uc.repo.FindAll(ctx)
}

// GetDefaultPrinter returns nil when no printer is configured.
func (uc *printerUseCase) GetDefaultPrinter(ctx context.Context) (*model.Printer, error) {
	printers, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range printers {
		if printers[i].IsDefault {
			return &printers[i], nil
		}
	}
	return nil, nil
}

func (uc *printerUseCase) UpdatePrinter(ctx context.Context, id string, input *dto.PrinterInput) (*model.Printer, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.ErrPrinterNotFound.WithDetail("%s", id)
	}
	p.Name = strings.TrimSpace(input.Name)
	p.Address = strings.TrimSpace(input.Address)
	p.PaperSize = input.PaperSize
	p.IsDefault = input.IsDefault
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *printerUseCase) SetDefault(ctx context.Context, id string) error {
	return uc.repo.SetDefault(ctx, id)
}

func (uc *printerUseCase) DeletePrinter(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
