package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractBudgeted       ContractStatus = "budgeted"
	ContractDeposited      ContractStatus = "deposited"
	ContractPaid           ContractStatus = "paid"
	ContractActive         ContractStatus = "active"
	ContractExpired        ContractStatus = "expired"
	ContractFinished       ContractStatus = "finished"
	ContractReturnedOK     ContractStatus = "returned_ok"
	ContractReturnedFailed ContractStatus = "returned_failed"
	ContractCanceled       ContractStatus = "canceled"
)

type Contract struct {
	BaseModel
	Number     string          `db:"number"`
	ClientID   string          `db:"client_id"`
	OfficeID   string          `db:"office_id"`
	Status     ContractStatus  `db:"status"`
	StartDate  time.Time       `db:"start_date"`
	EndDate    time.Time       `db:"end_date"`
	Subtotal   decimal.Decimal `db:"subtotal"`
	Discount   decimal.Decimal `db:"discount"`
	Total      decimal.Decimal `db:"total"`
	AmountPaid decimal.Decimal `db:"amount_paid"`
	Notes      string          `db:"notes"`
	CreatedBy  *string         `db:"created_by"`

	Items   []ContractItem         `db:"-"`
	History []ContractStatusChange `db:"-"`
}

// Balance is what the client still owes.
func (c *Contract) Balance() decimal.Decimal {
	return c.Total.Sub(c.AmountPaid)
}

type ContractItem struct {
	ID               string          `db:"id"`
	ContractID       string          `db:"contract_id"`
	ProductID        string          `db:"product_id"`
	Quantity         int             `db:"quantity"`
	UnitPrice        decimal.Decimal `db:"unit_price"` // per day
	Days             int             `db:"days"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	ReturnedQuantity int             `db:"returned_quantity"`
	MissingQuantity  int             `db:"missing_quantity"`

	Services []ItemService `db:"-"`
}

// ItemService is an extra charge attached to a contract item (delivery,
// cleaning, insurance...).
type ItemService struct {
	ID             string          `db:"id"`
	ContractItemID string          `db:"contract_item_id"`
	Name           string          `db:"name"`
	Price          decimal.Decimal `db:"price"`
}

type ContractStatusChange struct {
	ID         string          `db:"id"`
	ContractID string          `db:"contract_id"`
	FromStatus *ContractStatus `db:"from_status"`
	ToStatus   ContractStatus  `db:"to_status"`
	Notes      string          `db:"notes"`
	ChangedBy  *string         `db:"changed_by"`
	ChangedAt  time.Time       `db:"changed_at"`
}
