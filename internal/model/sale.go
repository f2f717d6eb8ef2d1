package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type SaleStatus string

const (
	SaleCompleted SaleStatus = "completed"
	SaleCanceled  SaleStatus = "canceled"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

type Sale struct {
	BaseModel
	OfficeID      string          `db:"office_id"`
	ClientID      *string         `db:"client_id"`
	Status        SaleStatus      `db:"status"`
	PaymentMethod PaymentMethod   `db:"payment_method"`
	Total         decimal.Decimal `db:"total"`
	CreatedBy     *string         `db:"created_by"`
	CanceledAt    *time.Time      `db:"canceled_at"`
	Lines         []SaleLine      `db:"-"`
}

type SaleLine struct {
	ID        string          `db:"id"`
	SaleID    string          `db:"sale_id"`
	ProductID string          `db:"product_id"`
	Quantity  int             `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
	Discount  decimal.Decimal `db:"discount"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}

// Recalculate refreshes line subtotals (unit*qty - discount) and the sale total.
func (s *Sale) Recalculate() {
	total := decimal.Zero
	for i := range s.Lines {
		l := &s.Lines[i]
		l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.Discount)
		total = total.Add(l.Subtotal)
	}
	s.Total = total
}
