package dto

type CreateOfficeInput struct {
	Name    string
	Address string
	Phone   string
}

type UpdateOfficeInput struct {
	ID       string
	Name     string
	Address  string
	Phone    string
	IsActive bool
}
