package repository

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/fekuna/omnipos-register-service/internal/store"
)

type StoreRepository struct {
	s *store.Store
}

func NewStoreRepository(s *store.Store) *StoreRepository {
	return &StoreRepository{s: s}
}

func (r *StoreRepository) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var out []model.Transaction
	r.s.View(func(d *store.Data) {
		out = append([]model.Transaction(nil), d.Transactions...)
	})
	return out, nil
}

func (r *StoreRepository) Products(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	r.s.View(func(d *store.Data) {
		out = append([]model.Product(nil), d.Products...)
	})
	return out, nil
}

func (r *StoreRepository) Costing(ctx context.Context) ([]model.Product, model.Recipes, []model.Ingredient, error) {
	var (
		products    []model.Product
		recipes     model.Recipes
		ingredients []model.Ingredient
	)
	r.s.View(func(d *store.Data) {
		products = append([]model.Product(nil), d.Products...)
		ingredients = append([]model.Ingredient(nil), d.Ingredients...)
		recipes = make(model.Recipes, len(d.Recipes))
		for pid, lines := range d.Recipes {
			recipes[pid] = append([]model.RecipeLine(nil), lines...)
		}
	})
	return products, recipes, ingredients, nil
}

func (r *StoreRepository) Now() time.Time {
	return r.s.Now()
}
