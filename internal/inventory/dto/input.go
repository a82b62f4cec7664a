package dto

type AdjustInventoryInput struct {
	ProductID      string
	QuantityChange int
	Reason         string
	ReferenceID    string
	ReferenceType  string // manual_adjustment, stock_received, stock_opname
	UserID         string
}
