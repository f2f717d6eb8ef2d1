package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type InternalOrderStatus string

const (
	InternalOrderPending   InternalOrderStatus = "pending"
	InternalOrderCompleted InternalOrderStatus = "completed"
	InternalOrderCanceled  InternalOrderStatus = "canceled"
)

// InternalOrder moves stock from one office to another.
type InternalOrder struct {
	BaseModel
	SourceOfficeID      string              `db:"source_office_id"`
	DestinationOfficeID string              `db:"destination_office_id"`
	Status              InternalOrderStatus `db:"status"`
	Notes               string              `db:"notes"`
	CreatedBy           *string             `db:"created_by"`
	CompletedAt         *time.Time          `db:"completed_at"`
	Lines               []InternalOrderLine `db:"-"`
}

type InternalOrderLine struct {
	ID              string `db:"id"`
	InternalOrderID string `db:"internal_order_id"`
	ProductID       string `db:"product_id"`
	Quantity        int    `db:"quantity"`
}

type SupplierOrderStatus string

const (
	SupplierOrderPending  SupplierOrderStatus = "pending"
	SupplierOrderReceived SupplierOrderStatus = "received"
	SupplierOrderCanceled SupplierOrderStatus = "canceled"
)

type SupplierOrder struct {
	BaseModel
	SupplierID string              `db:"supplier_id"`
	OfficeID   string              `db:"office_id"`
	Status     SupplierOrderStatus `db:"status"`
	Total      decimal.Decimal     `db:"total"`
	Notes      string              `db:"notes"`
	ExpectedAt *time.Time          `db:"expected_at"`
	ReceivedAt *time.Time          `db:"received_at"`
	CreatedBy  *string             `db:"created_by"`
	Lines      []SupplierOrderLine `db:"-"`
}

type SupplierOrderLine struct {
	ID              string          `db:"id"`
	SupplierOrderID string          `db:"supplier_order_id"`
	ProductID       string          `db:"product_id"`
	Quantity        int             `db:"quantity"`
	UnitCost        decimal.Decimal `db:"unit_cost"`
	Subtotal        decimal.Decimal `db:"subtotal"`
}

// Recalculate refreshes line subtotals and the order total.
func (o *SupplierOrder) Recalculate() {
	total := decimal.Zero
	for i := range o.Lines {
		l := &o.Lines[i]
		l.Subtotal = l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
		total = total.Add(l.Subtotal)
	}
	o.Total = total
}
