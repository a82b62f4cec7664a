package model

type Printer struct {
	BaseModel
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	PaperSize PaperSize `json:"paper_size"`
	IsDefault bool      `json:"is_default"`
}
