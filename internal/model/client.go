package model

type Client struct {
	BaseModel
	FullName       string  `db:"full_name" json:"full_name"`
	DocumentNumber string  `db:"document_number" json:"document_number"`
	Email          *string `db:"email" json:"email"`
	Phone          *string `db:"phone" json:"phone"`
	Address        *string `db:"address" json:"address"`
	IsActive       bool    `db:"is_active" json:"is_active"`
}
