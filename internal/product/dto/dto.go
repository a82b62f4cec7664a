package dto

type ProductFilters struct {
	CategoryID  string
	IsActive    *bool
	SearchQuery string // name or SKU
	SortBy      string // name, price, stock, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}
