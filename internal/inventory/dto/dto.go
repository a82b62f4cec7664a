package dto

import (
	"time"

	"github.com/fekuna/omnipos-register-service/internal/model"
)

// StockLevel is the inventory view of one product.
type StockLevel struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	CategoryID string `json:"category_id"`
	Stock      int    `json:"stock"`
	MinStock   int    `json:"min_stock"`
	IsActive   bool   `json:"is_active"`
	IsLowStock bool   `json:"is_low_stock"`
}

func NewStockLevel(p model.Product) StockLevel {
	return StockLevel{
		ProductID:  p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		CategoryID: p.CategoryID,
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		IsActive:   p.IsActive,
		IsLowStock: p.IsLowStock(),
	}
}

type InventoryFilters struct {
	CategoryID string
	LowStock   bool // active products at or below their minimum stock
	Page       int
	PageSize   int
}

type MovementFilters struct {
	ProductID    string
	MovementType model.MovementType
	StartDate    *time.Time
	EndDate      *time.Time
	Page         int
	PageSize     int
}
