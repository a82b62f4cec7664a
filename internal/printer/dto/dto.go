package dto

import "github.com/fekuna/omnipos-register-service/internal/model"

type PrinterInput struct {
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	PaperSize model.PaperSize `json:"paper_size"`
	IsDefault bool            `json:"is_default"`
}
