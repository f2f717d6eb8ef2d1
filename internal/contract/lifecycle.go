package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var transitions = map[model.ContractStatus][]model.ContractStatus{
	model.ContractBudgeted:  {model.ContractDeposited, model.ContractPaid, model.ContractCanceled},
	model.ContractDeposited: {model.ContractPaid, model.ContractCanceled},
	model.ContractPaid:      {model.ContractActive, model.ContractCanceled},
	model.ContractActive:    {model.ContractExpired, model.ContractFinished},
	model.ContractExpired:   {model.ContractFinished},
	model.ContractFinished:  {model.ContractReturnedOK, model.ContractReturnedFailed},
}

// CanTransition reports whether a contract may move from one status to another.
func CanTransition(from, to model.ContractStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsOpen reports whether the contract still ties up a client or stock.
func IsOpen(s model.ContractStatus) bool {
	switch s {
	case model.ContractReturnedOK, model.ContractReturnedFailed, model.ContractCanceled:
		return false
	}
	return true
}

// RentalDays counts whole calendar days between start and end, at least one.
func RentalDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	days := int(e.Sub(s).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}

// Recalculate derives item days and subtotals and the contract totals from
// its dates, items, services and discount.
func Recalculate(c *model.Contract) {
	days := RentalDays(c.StartDate, c.EndDate)

	subtotal := decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		item.Days = days

		amount := item.UnitPrice.
			Mul(decimal.NewFromInt(int64(item.Quantity))).
			Mul(decimal.NewFromInt(int64(days)))
		for _, s := range item.Services {
			amount = amount.Add(s.Price)
		}
		item.Subtotal = amount
		subtotal = subtotal.Add(amount)
	}

	c.Subtotal = subtotal
	c.Total = decimal.Max(subtotal.Sub(c.Discount), decimal.Zero)
}

// NewNumber returns a human readable contract number, C-YYYYMMDD-xxxxxx.
func NewNumber(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	return fmt.Sprintf("C-%s-%s", now.Format("20060102"), suffix)
}
