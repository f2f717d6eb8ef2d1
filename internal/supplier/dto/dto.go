package dto

type SupplierFilters struct {
	Search     string
	ActiveOnly bool
	Page       int
	PageSize   int
}
