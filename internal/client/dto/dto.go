package dto

type ClientFilters struct {
	Search     string // name or document number
	ActiveOnly bool
	Page       int
	PageSize   int
}
