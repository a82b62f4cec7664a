package dto

import "github.com/fekuna/omnipos-register-service/internal/model"

// CategoryWithCount is a category with the number of products assigned to it.
type CategoryWithCount struct {
	model.Category
	ProductCount int `json:"product_count"`
}
