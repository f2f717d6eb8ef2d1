package dto

type ProductFilters struct {
	Kind       string // sale, rental
	ActiveOnly bool
	Search     string // name, sku, brand
	SortBy     string // name, sku, created_at
	SortOrder  string // asc, desc
	Page       int
	PageSize   int
}
