package dto

type AdjustStockInput struct {
	OfficeID       string
	ProductID      string
	QuantityChange int
	Reason         string
	UserID         string
}
