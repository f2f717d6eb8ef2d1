package dto

import "time"

type SaleFilters struct {
	OfficeID string
	ClientID string
	Status   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}
