package model

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places stored for amounts.
const MoneyScale = 2

// IsMoney reports whether d fits the stored scale without rounding.
func IsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}
