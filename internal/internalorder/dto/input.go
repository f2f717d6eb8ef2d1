package dto

type CreateInternalOrderInput struct {
	SourceOfficeID      string
	DestinationOfficeID string
	Notes               string
	Lines               []LineInput
	UserID              string
}

type LineInput struct {
	ProductID string
	Quantity  int
}
