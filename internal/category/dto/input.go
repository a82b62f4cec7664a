package dto

type CreateCategoryInput struct {
	Name string
	Icon string
}

type UpdateCategoryInput struct {
	ID   string
	Name string
	Icon string
}
