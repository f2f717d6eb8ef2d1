package dto

type InternalOrderFilters struct {
	OfficeID string // source or destination
	Status   string
	Page     int
	PageSize int
}
