package dto

import "github.com/shopspring/decimal"

type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Brand       string
	Kind        string
	SalePrice   decimal.Decimal
	RentalPrice decimal.Decimal
	CostPrice   decimal.Decimal
}

// UpdateProductInput cannot change the kind: sales and contracts reference it.
type UpdateProductInput struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Brand       string
	SalePrice   decimal.Decimal
	RentalPrice decimal.Decimal
	CostPrice   decimal.Decimal
	IsActive    bool
}
