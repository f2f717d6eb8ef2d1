package dto

type CreateClientInput struct {
	FullName       string
	DocumentNumber string
	Email          string
	Phone          string
	Address        string
}

type UpdateClientInput struct {
	ID             string
	FullName       string
	DocumentNumber string
	Email          string
	Phone          string
	Address        string
	IsActive       bool
}
