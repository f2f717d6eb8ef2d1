package model

type Office struct {
	BaseModel
	Name     string  `db:"name" json:"name"`
	Address  string  `db:"address" json:"address"`
	Phone    *string `db:"phone" json:"phone"`
	IsActive bool    `db:"is_active" json:"is_active"`
}

type Supplier struct {
	BaseModel
	Name        string  `db:"name" json:"name"`
	TaxID       string  `db:"tax_id" json:"tax_id"`
	ContactName *string `db:"contact_name" json:"contact_name"`
	Email       *string `db:"email" json:"email"`
	Phone       *string `db:"phone" json:"phone"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}
