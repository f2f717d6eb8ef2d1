package dto

import "github.com/shopspring/decimal"

type CreateSaleInput struct {
	OfficeID      string
	ClientID      string
	PaymentMethod string
	Lines         []LineInput
	UserID        string
}

type LineInput struct {
	ProductID string
	Quantity  int
	UnitPrice *decimal.Decimal // nil means the product's sale price
	Discount  decimal.Decimal
}
