package model

import "time"

type MovementType string

const (
	MovementSale       MovementType = "sale"
	MovementAdjustment MovementType = "adjustment"
)

type InventoryMovement struct {
	ID             string       `json:"id"`
	ProductID      string       `json:"product_id"`
	MovementType   MovementType `json:"movement_type"`
	QuantityChange int          `json:"quantity_change"`
	QuantityBefore int          `json:"quantity_before"`
	QuantityAfter  int          `json:"quantity_after"`
	ReferenceType  string       `json:"reference_type,omitempty"`
	ReferenceID    string       `json:"reference_id,omitempty"`
	Notes          string       `json:"notes,omitempty"`
	CreatedBy      string       `json:"created_by,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
