package dto

type SupplierOrderFilters struct {
	SupplierID string
	OfficeID   string
	Status     string
	Page       int
	PageSize   int
}
