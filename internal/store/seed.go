package store

import (
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func DefaultSettings() model.StoreSettings {
	return model.StoreSettings{
		StoreName:            "POS Pro Smart Cafe",
		Address:              "Jl. Sudirman No. 123, Jakarta",
		Phone:                "021-1234567",
		NPWP:                 "12.345.678.9-012.000",
		TaxEnabled:           true,
		TaxPercent:           decimal.NewFromInt(11),
		ServiceChargeEnabled: true,
		ServiceChargePercent: decimal.NewFromInt(5),
		Receipt: model.ReceiptSettings{
			Header:    "Terima kasih atas kunjungan Anda!",
			Footer:    "Barang yang sudah dibeli tidak dapat dikembalikan.",
			ShowLogo:  true,
			PaperSize: model.Paper58mm,
		},
	}
}

// emptyData is what a fresh register starts with when demo seeding is off:
// default settings, no catalog, no ledger and a single admin account.
func emptyData(now time.Time, bootstrapPIN string, cost int) (*Data, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(bootstrapPIN), cost)
	if err != nil {
		return nil, err
	}
	d := &Data{
		Settings: DefaultSettings(),
		Users: []model.User{{
			BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			Name:      "Administrator",
			Role:      model.RoleAdmin,
			PINHash:   string(hash),
			IsActive:  true,
		}},
	}
	d.normalize()
	return d, nil
}

type seedProduct struct {
	id, name, sku, category string
	buy, sell               int64
	stock, minStock         int
}

var seedProducts = []seedProduct{
	{"p1", "Espresso", "KP001", "cat1", 5000, 18000, 100, 10},
	{"p2", "Cappuccino", "KP002", "cat1", 7000, 25000, 80, 10},
	{"p3", "Latte", "KP003", "cat1", 7000, 28000, 75, 10},
	{"p4", "Americano", "KP004", "cat1", 5000, 20000, 90, 10},
	{"p5", "Mocha", "KP005", "cat1", 8000, 30000, 60, 10},
	{"p6", "Matcha Latte", "NK001", "cat2", 8000, 28000, 50, 10},
	{"p7", "Taro Milk", "NK002", "cat2", 7000, 25000, 45, 10},
	{"p8", "Thai Tea", "NK003", "cat2", 6000, 22000, 55, 10},
	{"p9", "Nasi Goreng", "MK001", "cat3", 12000, 35000, 30, 5},
	{"p10", "Mie Goreng", "MK002", "cat3", 10000, 30000, 25, 5},
	{"p11", "Sandwich", "MK003", "cat3", 12000, 32000, 20, 5},
	{"p12", "French Fries", "SN001", "cat4", 8000, 22000, 40, 10},
	{"p13", "Roti Bakar", "SN002", "cat4", 6000, 18000, 35, 10},
	{"p14", "Cheesecake", "DS001", "cat5", 15000, 38000, 15, 5},
	{"p15", "Brownies", "DS002", "cat5", 10000, 28000, 20, 5},
}

// demoData builds the demo cafe catalog. The ledger starts empty.
func demoData(now time.Time, cost int) (*Data, error) {
	base := func(id string) model.BaseModel {
		return model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now}
	}
	d := &Data{Settings: DefaultSettings()}

	for _, c := range []struct{ id, name, icon string }{
		{"cat1", "Kopi", "coffee"},
		{"cat2", "Non-Kopi", "cup-soda"},
		{"cat3", "Makanan", "utensils"},
		{"cat4", "Snack", "cookie"},
		{"cat5", "Dessert", "cake"},
	} {
		d.Categories = append(d.Categories, model.Category{BaseModel: base(c.id), Name: c.name, Icon: c.icon})
	}

	for _, p := range seedProducts {
		d.Products = append(d.Products, model.Product{
			BaseModel:  base(p.id),
			Name:       p.name,
			SKU:        p.sku,
			CategoryID: p.category,
			BuyPrice:   decimal.NewFromInt(p.buy),
			SellPrice:  decimal.NewFromInt(p.sell),
			Stock:      p.stock,
			MinStock:   p.minStock,
			IsActive:   true,
		})
	}

	for _, v := range []struct {
		id, product, name string
		adj               int64
	}{
		{"v1", "p1", "Hot", 0},
		{"v2", "p1", "Iced", 3000},
		{"v3", "p2", "Hot", 0},
		{"v4", "p2", "Iced", 3000},
		{"v5", "p2", "Large", 5000},
	} {
		d.Variants = append(d.Variants, model.ProductVariant{
			BaseModel: base(v.id), ProductID: v.product, Name: v.name, PriceAdjustment: decimal.NewFromInt(v.adj),
		})
	}

	for _, in := range []struct {
		id, name, unit string
		cost           int64
	}{
		{"ing1", "Biji Kopi Arabica", "gram", 150},
		{"ing2", "Susu Segar", "ml", 25},
		{"ing3", "Gula Aren", "gram", 40},
		{"ing4", "Es Batu", "pcs", 500},
		{"ing5", "Whipped Cream", "gram", 80},
		{"ing6", "Cokelat Bubuk", "gram", 120},
	} {
		d.Ingredients = append(d.Ingredients, model.Ingredient{
			BaseModel: base(in.id), Name: in.name, Unit: in.unit, CostPerUnit: decimal.NewFromInt(in.cost),
		})
	}

	line := func(ing string, qty int64) model.RecipeLine {
		return model.RecipeLine{IngredientID: ing, Qty: decimal.NewFromInt(qty)}
	}
	d.Recipes = model.Recipes{
		"p1": {line("ing1", 18)},
		"p2": {line("ing1", 18), line("ing2", 150)},
		"p3": {line("ing1", 18), line("ing2", 200)},
		"p5": {line("ing1", 18), line("ing2", 150), line("ing6", 20)},
	}

	for _, u := range []struct {
		id, name, email string
		role            model.Role
		pin             string
	}{
		{"1", "Admin Utama", "admin@pospro.com", model.RoleAdmin, "1234"},
		{"2", "Supervisor Andi", "andi@pospro.com", model.RoleSupervisor, "5678"},
		{"3", "Kasir Dewi", "dewi@pospro.com", model.RoleCashier, "9012"},
		{"4", "Kasir Budi", "budi@pospro.com", model.RoleCashier, "3456"},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.pin), cost)
		if err != nil {
			return nil, err
		}
		d.Users = append(d.Users, model.User{
			BaseModel: base(u.id), Name: u.name, Email: u.email, Role: u.role, PINHash: string(hash), IsActive: true,
		})
	}

	d.normalize()
	return d, nil
}
