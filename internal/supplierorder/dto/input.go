package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateSupplierOrderInput struct {
	SupplierID string
	OfficeID   string
	Notes      string
	ExpectedAt *time.Time
	Lines      []LineInput
	UserID     string
}

type LineInput struct {
	ProductID string
	Quantity  int
	UnitCost  decimal.Decimal
}
