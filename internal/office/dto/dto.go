package dto

type OfficeFilters struct {
	ActiveOnly bool
	Page       int
	PageSize   int
}
