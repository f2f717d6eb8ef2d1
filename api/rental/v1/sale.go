package rentalv1

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const SaleServiceName = "rental.v1.SaleService"

type SaleLine struct {
	Id        string           `json:"id,omitempty"`
	ProductId string           `json:"product_id"`
	Quantity  int32            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Discount  decimal.Decimal  `json:"discount"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
}

type Sale struct {
	Id            string          `json:"id"`
	OfficeId      string          `json:"office_id"`
	ClientId      string          `json:"client_id,omitempty"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	Total         decimal.Decimal `json:"total"`
	CreatedBy     string          `json:"created_by,omitempty"`
	Lines         []*SaleLine     `json:"lines"`
	CanceledAt    *time.Time      `json:"canceled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CreateSaleRequest struct {
	OfficeId      string      `json:"office_id"`
	ClientId      string      `json:"client_id"`
	PaymentMethod string      `json:"payment_method"`
	Lines         []*SaleLine `json:"lines"`
}

type GetSaleRequest struct {
	Id string `json:"id"`
}

type ListSalesRequest struct {
	OfficeId string     `json:"office_id"`
	ClientId string     `json:"client_id"`
	Status   string     `json:"status"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
	Page     int32      `json:"page"`
	PageSize int32      `json:"page_size"`
}

type ListSalesResponse struct {
	Sales []*Sale `json:"sales"`
	Total int32   `json:"total"`
}

type CancelSaleRequest struct {
	Id     string `json:"id"`
	Reason string `json:"reason"`
}

type SaleServiceServer interface {
	CreateSale(context.Context, *CreateSaleRequest) (*Sale, error)
	GetSale(context.Context, *GetSaleRequest) (*Sale, error)
	ListSales(context.Context, *ListSalesRequest) (*ListSalesResponse, error)
	CancelSale(context.Context, *CancelSaleRequest) (*Sale, error)
}

var SaleService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: SaleServiceName,
	HandlerType: (*SaleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(SaleServiceName, "CreateSale", SaleServiceServer.CreateSale),
		unaryMethod(SaleServiceName, "GetSale", SaleServiceServer.GetSale),
		unaryMethod(SaleServiceName, "ListSales", SaleServiceServer.ListSales),
		unaryMethod(SaleServiceName, "CancelSale", SaleServiceServer.CancelSale),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterSaleServiceServer(s grpc.ServiceRegistrar, srv SaleServiceServer) {
	s.RegisterService(&SaleService_ServiceDesc, srv)
}
