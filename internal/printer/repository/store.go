package repository

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/apperror"
	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/store"
)

type StoreRepository struct {
	store *store.Store
}

func NewStoreRepository(s *store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func clearDefault(printers []model.Printer, except string) {
	for i := range printers {
		if printers[i].ID != except {
			printers[i].IsDefault = false
		}
	}
}

// Create makes the first printer the default regardless of p.IsDefault.
func (r *StoreRepository) Create(ctx context.Context, p *model.Printer) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		if len(tx.Printers) == 0 {
			p.IsDefault = true
		}
		if p.IsDefault {
			clearDefault(tx.Printers, p.ID)
		}
		tx.Printers = append(tx.Printers, *p)
		tx.Touch(store.KeyPrinters)
		return nil
	})
}

// FindByID returns nil when the printer does not exist.
func (r *StoreRepository) FindByID(_ context.Context, id string) (*model.Printer, error) {
	var found *model.Printer
	r.store.View(func(d *store.Data) {
		if i := d.PrinterIndex(id); i >= 0 {
			p := d.Printers[i]
			found = &p
		}
	})
	return found, nil
}

func (r *StoreRepository) FindAll(_ context.Context) ([]model.Printer, error) {
	var out []model.Printer
	r.store.View(func(d *store.Data) {
		out = append([]model.Printer{}, d.Printers...)
	})
	return out, nil
}

func (r *StoreRepository) Update(ctx context.Context, p *model.Printer) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.PrinterIndex(p.ID)
		if i < 0 {
			return apperror.ErrPrinterNotFound.WithDetail("%s", p.ID)
		}
		if p.IsDefault {
			clearDefault(tx.Printers, p.ID)
		}
		p.CreatedAt = tx.Printers[i].CreatedAt
		tx.Printers[i] = *p
		tx.Touch(store.KeyPrinters)
		return nil
	})
}

func (r *StoreRepository) SetDefault(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.PrinterIndex(id)
		if i < 0 {
			return apperror.ErrPrinterNotFound.WithDetail("%s", id)
		}
		clearDefault(tx.Printers, id)
		tx.Printers[i].IsDefault = true
		tx.Touch(store.KeyPrinters)
		return nil
	})
}

// Delete promotes the first remaining printer when the default goes away.
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		i := tx.PrinterIndex(id)
		if i < 0 {
			return apperror.ErrPrinterNotFound.WithDetail("%s", id)
		}
		wasDefault := tx.Printers[i].IsDefault
		tx.Printers = append(tx.Printers[:i], tx.Printers[i+1:]...)
		if wasDefault && len(tx.Printers) > 0 {
			tx.Printers[0].IsDefault = true
		}
		tx.Touch(store.KeyPrinters)
		return nil
	})
}
