package dto

type StockFilters struct {
	OfficeID  string
	ProductID string
	LowStock  bool // quantity <= reorder_point
	Page      int
	PageSize  int
}

type MovementFilters struct {
	OfficeID     string
	ProductID    string
	MovementType string
	ReferenceID  string
	Page         int
	PageSize     int
}
