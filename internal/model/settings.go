package model

import "github.com/shopspring/decimal"

type PaperSize string

const (
	Paper58mm PaperSize = "58mm"
	Paper80mm PaperSize = "80mm"
)

func (p PaperSize) Valid() bool {
	return p == Paper58mm || p == Paper80mm
}

type ReceiptSettings struct {
	LogoURL   string    `json:"logo_url"`
	Header    string    `json:"header"`
	Footer    string    `json:"footer"`
	ShowLogo  bool      `json:"show_logo"`
	PaperSize PaperSize `json:"paper_size"`
}

type StoreSettings struct {
	StoreName            string          `json:"store_name"`
	Address              string          `json:"address"`
	Phone                string          `json:"phone"`
	NPWP                 string          `json:"npwp"`
	TaxEnabled           bool            `json:"tax_enabled"`
	TaxPercent           decimal.Decimal `json:"tax_percent"`
	ServiceChargeEnabled bool            `json:"service_charge_enabled"`
	ServiceChargePercent decimal.Decimal `json:"service_charge_percent"`
	Receipt              ReceiptSettings `json:"receipt"`
}
