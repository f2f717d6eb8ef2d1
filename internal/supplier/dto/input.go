package dto

type CreateSupplierInput struct {
	Name        string
	TaxID       string
	ContactName string
	Email       string
	Phone       string
}

type UpdateSupplierInput struct {
	ID          string
	Name        string
	TaxID       string
	ContactName string
	Email       string
	Phone       string
	IsActive    bool
}
