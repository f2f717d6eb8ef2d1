package dto

import "time"

type ContractFilters struct {
	ClientID string
	OfficeID string
	Status   string
	From     *time.Time // start_date lower bound
	To       *time.Time // start_date upper bound, exclusive
	Page     int
	PageSize int
}
