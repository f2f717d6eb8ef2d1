package rentalv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const (
	OfficeServiceName   = "rental.v1.OfficeService"
	SupplierServiceName = "rental.v1.SupplierService"
)

type Office struct {
	Id        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateOfficeRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type GetOfficeRequest struct {
	Id string `json:"id"`
}

type ListOfficesRequest struct {
	ActiveOnly bool  `json:"active_only"`
	Page       int32 `json:"page"`
	PageSize   int32 `json:"page_size"`
}

type ListOfficesResponse struct {
	Offices []*Office `json:"offices"`
	Total   int32     `json:"total"`
}

type UpdateOfficeRequest struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive bool   `json:"is_active"`
}

type OfficeServiceServer interface {
	CreateOffice(context.Context, *CreateOfficeRequest) (*Office, error)
	GetOffice(context.Context, *GetOfficeRequest) (*Office, error)
	ListOffices(context.Context, *ListOfficesRequest) (*ListOfficesResponse, error)
	UpdateOffice(context.Context, *UpdateOfficeRequest) (*Office, error)
}

var OfficeService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OfficeServiceName,
	HandlerType: (*OfficeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(OfficeServiceName, "CreateOffice", OfficeServiceServer.CreateOffice),
		unaryMethod(OfficeServiceName, "GetOffice", OfficeServiceServer.GetOffice),
		unaryMethod(OfficeServiceName, "ListOffices", OfficeServiceServer.ListOffices),
		unaryMethod(OfficeServiceName, "UpdateOffice", OfficeServiceServer.UpdateOffice),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterOfficeServiceServer(s grpc.ServiceRegistrar, srv OfficeServiceServer) {
	s.RegisterService(&OfficeService_ServiceDesc, srv)
}

type Supplier struct {
	Id          string    `json:"id"`
	Name        string    `json:"name"`
	TaxId       string    `json:"tax_id"`
	ContactName string    `json:"contact_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateSupplierRequest struct {
	Name        string `json:"name"`
	TaxId       string `json:"tax_id"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type GetSupplierRequest struct {
	Id string `json:"id"`
}

type ListSuppliersRequest struct {
	Search     string `json:"search"`
	ActiveOnly bool   `json:"active_only"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
}

type ListSuppliersResponse struct {
	Suppliers []*Supplier `json:"suppliers"`
	Total     int32       `json:"total"`
}

type UpdateSupplierRequest struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	TaxId       string `json:"tax_id"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	IsActive    bool   `json:"is_active"`
}

type SupplierServiceServer interface {
	CreateSupplier(context.Context, *CreateSupplierRequest) (*Supplier, error)
	GetSupplier(context.Context, *GetSupplierRequest) (*Supplier, error)
	ListSuppliers(context.Context, *ListSuppliersRequest) (*ListSuppliersResponse, error)
	UpdateSupplier(context.Context, *UpdateSupplierRequest) (*Supplier, error)
}

var SupplierService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SupplierServiceName,
	HandlerType: (*SupplierServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(SupplierServiceName, "CreateSupplier", SupplierServiceServer.CreateSupplier),
		unaryMethod(SupplierServiceName, "GetSupplier", SupplierServiceServer.GetSupplier),
		unaryMethod(SupplierServiceName, "ListSuppliers", SupplierServiceServer.ListSuppliers),
		unaryMethod(SupplierServiceName, "UpdateSupplier", SupplierServiceServer.UpdateSupplier),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterSupplierServiceServer(s grpc.ServiceRegistrar, srv SupplierServiceServer) {
	s.RegisterService(&SupplierService_ServiceDesc, srv)
}
