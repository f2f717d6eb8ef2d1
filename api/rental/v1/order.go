package rentalv1

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const (
	InternalOrderServiceName = "rental.v1.InternalOrderService"
	SupplierOrderServiceName = "rental.v1.SupplierOrderService"
)

type OrderLine struct {
	Id        string `json:"id,omitempty"`
	ProductId string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type InternalOrder struct {
	Id                  string       `json:"id"`
	SourceOfficeId      string       `json:"source_office_id"`
	DestinationOfficeId string       `json:"destination_office_id"`
	Status              string       `json:"status"`
	Notes               string       `json:"notes,omitempty"`
	CreatedBy           string       `json:"created_by,omitempty"`
	Lines               []*OrderLine `json:"lines"`
	CompletedAt         *time.Time   `json:"completed_at,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

type CreateInternalOrderRequest struct {
	SourceOfficeId      string       `json:"source_office_id"`
	DestinationOfficeId string       `json:"destination_office_id"`
	Notes               string       `json:"notes"`
	Lines               []*OrderLine `json:"lines"`
}

type GetInternalOrderRequest struct {
	Id string `json:"id"`
}

type ListInternalOrdersRequest struct {
	OfficeId string `json:"office_id"`
	Status   string `json:"status"`
	Page     int32  `json:"page"`
	PageSize int32  `json:"page_size"`
}

type ListInternalOrdersResponse struct {
	Orders []*InternalOrder `json:"orders"`
	Total  int32            `json:"total"`
}

type InternalOrderActionRequest struct {
	Id string `json:"id"`
}

type InternalOrderServiceServer interface {
	CreateInternalOrder(context.Context, *CreateInternalOrderRequest) (*InternalOrder, error)
	GetInternalOrder(context.Context, *GetInternalOrderRequest) (*InternalOrder, error)
	ListInternalOrders(context.Context, *ListInternalOrdersRequest) (*ListInternalOrdersResponse, error)
	CompleteInternalOrder(context.Context, *InternalOrderActionRequest) (*InternalOrder, error)
	CancelInternalOrder(context.Context, *InternalOrderActionRequest) (*InternalOrder, error)
}

var InternalOrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: InternalOrderServiceName,
	HandlerType: (*InternalOrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(InternalOrderServiceName, "CreateInternalOrder", InternalOrderServiceServer.CreateInternalOrder),
		unaryMethod(InternalOrderServiceName, "GetInternalOrder", InternalOrderServiceServer.GetInternalOrder),
		unaryMethod(InternalOrderServiceName, "ListInternalOrders", InternalOrderServiceServer.ListInternalOrders),
		unaryMethod(InternalOrderServiceName, "CompleteInternalOrder", InternalOrderServiceServer.CompleteInternalOrder),
		unaryMethod(InternalOrderServiceName, "CancelInternalOrder", InternalOrderServiceServer.CancelInternalOrder),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterInternalOrderServiceServer(s grpc.ServiceRegistrar, srv InternalOrderServiceServer) {
	s.RegisterService(&InternalOrderService_ServiceDesc, srv)
}

type SupplierOrderLine struct {
	Id        string          `json:"id,omitempty"`
	ProductId string          `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type SupplierOrder struct {
	Id         string               `json:"id"`
	SupplierId string               `json:"supplier_id"`
	OfficeId   string               `json:"office_id"`
	Status     string               `json:"status"`
	Total      decimal.Decimal      `json:"total"`
	Notes      string               `json:"notes,omitempty"`
	ExpectedAt *time.Time           `json:"expected_at,omitempty"`
	ReceivedAt *time.Time           `json:"received_at,omitempty"`
	CreatedBy  string               `json:"created_by,omitempty"`
	Lines      []*SupplierOrderLine `json:"lines"`
	CreatedAt  time.Time            `json:"created_at"`
	UpdatedAt  time.Time            `json:"updated_at"`
}

type CreateSupplierOrderRequest struct {
	SupplierId string               `json:"supplier_id"`
	OfficeId   string               `json:"office_id"`
	Notes      string               `json:"notes"`
	ExpectedAt *time.Time           `json:"expected_at"`
	Lines      []*SupplierOrderLine `json:"lines"`
}

type GetSupplierOrderRequest struct {
	Id string `json:"id"`
}

type ListSupplierOrdersRequest struct {
	SupplierId string `json:"supplier_id"`
	OfficeId   string `json:"office_id"`
	Status     string `json:"status"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
}

type ListSupplierOrdersResponse struct {
	Orders []*SupplierOrder `json:"orders"`
	Total  int32            `json:"total"`
}

type SupplierOrderActionRequest struct {
	Id string `json:"id"`
}

type SupplierOrderServiceServer interface {
	CreateSupplierOrder(context.Context, *CreateSupplierOrderRequest) (*SupplierOrder, error)
	GetSupplierOrder(context.Context, *GetSupplierOrderRequest) (*SupplierOrder, error)
	ListSupplierOrders(context.Context, *ListSupplierOrdersRequest) (*ListSupplierOrdersResponse, error)
	ReceiveSupplierOrder(context.Context, *SupplierOrderActionRequest) (*SupplierOrder, error)
	CancelSupplierOrder(context.Context, *SupplierOrderActionRequest) (*SupplierOrder, error)
}

var SupplierOrderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SupplierOrderServiceName,
	HandlerType: (*SupplierOrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(SupplierOrderServiceName, "CreateSupplierOrder", SupplierOrderServiceServer.CreateSupplierOrder),
		unaryMethod(SupplierOrderServiceName, "GetSupplierOrder", SupplierOrderServiceServer.GetSupplierOrder),
		unaryMethod(SupplierOrderServiceName, "ListSupplierOrders", SupplierOrderServiceServer.ListSupplierOrders),
		unaryMethod(SupplierOrderServiceName, "ReceiveSupplierOrder", SupplierOrderServiceServer.ReceiveSupplierOrder),
		unaryMethod(SupplierOrderServiceName, "CancelSupplierOrder", SupplierOrderServiceServer.CancelSupplierOrder),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterSupplierOrderServiceServer(s grpc.ServiceRegistrar, srv SupplierOrderServiceServer) {
	s.RegisterService(&SupplierOrderService_ServiceDesc, srv)
}
