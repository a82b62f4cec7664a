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

func (r *StoreRepository) Get(_ context.Context) (model.StoreSettings, error) {
	var s model.StoreSettings
	r.store.View(func(d *store.Data) { s = d.Settings })
	return s, nil
}

func (r *StoreRepository) Save(ctx context.Context, s model.StoreSettings) error {
	return r.store.Update(ctx, func(tx *store.Tx) error {
		tx.Settings = s
		tx.Touch(store.KeySettings)
		return nil
	})
}
