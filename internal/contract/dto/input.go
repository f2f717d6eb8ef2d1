package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateContractInput struct {
	ClientID  string
	OfficeID  string
	StartDate time.Time
	EndDate   time.Time
	Discount  decimal.Decimal
	Notes     string
	Items     []ItemInput
	UserID    string
}

type ItemInput struct {
	ProductID string
	Quantity  int
	UnitPrice *decimal.Decimal // nil means the product's rental price
	Services  []ServiceInput
}

type ServiceInput struct {
	Name  string
	Price decimal.Decimal
}

// UpdateContractItemsInput replaces the items when Items is non-empty; nil
// dates and discount keep their stored values.
type UpdateContractItemsInput struct {
	ID        string
	StartDate *time.Time
	EndDate   *time.Time
	Discount  *decimal.Decimal
	Items     []ItemInput
}

type ReturnContractInput struct {
	ID    string
	Notes string
	// Items maps contract item id to the units that came back. Items not
	// listed came back in full.
	Items map[string]int
}
