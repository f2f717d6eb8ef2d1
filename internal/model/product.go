package model

import "github.com/shopspring/decimal"

type ProductKind string

const (
	ProductKindSale   ProductKind = "sale"
	ProductKindRental ProductKind = "rental"
)

func (k ProductKind) Valid() bool {
	return k == ProductKindSale || k == ProductKindRental
}

type Product struct {
	BaseModel
	SKU         string          `db:"sku" json:"sku"`
	Name        string          `db:"name" json:"name"`
	Description *string         `db:"description" json:"description"`
	Brand       *string         `db:"brand" json:"brand"`
	Kind        ProductKind     `db:"kind" json:"kind"`
	SalePrice   decimal.Decimal `db:"sale_price" json:"sale_price"`
	RentalPrice decimal.Decimal `db:"rental_price" json:"rental_price"` // per day
	CostPrice   decimal.Decimal `db:"cost_price" json:"cost_price"`
	IsActive    bool            `db:"is_active" json:"is_active"`
}

func (p *Product) IsRentable() bool {
	return p.Kind == ProductKindRental
}
