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

func (r *StoreRepository) FindActive(_ context.Context) ([]model.User, error) {
	var users []model.User
	r.store.View(func(d *store.Data) {
		for _, u := range d.Users {
			if u.IsActive {
				users = append(users, u)
			}
		}
	})
	return users, nil
}

func (r *StoreRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	var found *model.User
	r.store.View(func(d *store.Data) {
		for i := range d.Users {
			if d.Users[i].ID == id {
				u := d.Users[i]
				found = &u
				return
			}
		}
	})
	return found, nil
}
