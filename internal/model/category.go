package model

type Category struct {
	BaseModel
	Name string `json:"name"`
	Icon string `json:"icon"`
}
