package repository

import (
	"context"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/store"
)

type StoreRepository struct {
	store *store.Store
}

func NewStoreRepository(s *store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) FindProduct(_ context.Context, id string) (*model.Product, error) {
	var found *model.Product
	r.store.View(func(d *store.Data) {
		if p, ok := d.FindProduct(id); ok {
			found = &p
		}
	})
	return found, nil
}

func (r *StoreRepository) Settings(_ context.Context) (model.StoreSettings, error) {
	var s model.StoreSettings
	r.store.View(func(d *store.Data) { s = d.Settings })
	return s, nil
}
