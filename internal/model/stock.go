package model

import "time"

type MovementType string

const (
	MovementAdjustment   MovementType = "adjustment"
	MovementSale         MovementType = "sale"
	MovementSaleCancel   MovementType = "sale_cancel"
	MovementTransferOut  MovementType = "transfer_out"
	MovementTransferIn   MovementType = "transfer_in"
	MovementPurchase     MovementType = "purchase"
	MovementRentalOut    MovementType = "rental_out"
	MovementRentalReturn MovementType = "rental_return"
)

type StockItem struct {
	ID           string    `db:"id" json:"id"`
	OfficeID     string    `db:"office_id" json:"office_id"`
	ProductID    string    `db:"product_id" json:"product_id"`
	Quantity     int       `db:"quantity" json:"quantity"`
	ReorderPoint int       `db:"reorder_point" json:"reorder_point"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type StockMovement struct {
	ID             string       `db:"id"`
	OfficeID       string       `db:"office_id"`
	ProductID      string       `db:"product_id"`
	MovementType   MovementType `db:"movement_type"`
	QuantityChange int          `db:"quantity_change"`
	QuantityBefore int          `db:"quantity_before"`
	QuantityAfter  int          `db:"quantity_after"`
	ReferenceType  *string      `db:"reference_type"`
	ReferenceID    *string      `db:"reference_id"`
	Notes          string       `db:"notes"`
	CreatedBy      *string      `db:"created_by"`
	CreatedAt      time.Time    `db:"created_at"`
}
