package rentalv1

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const (
	ProductServiceName = "rental.v1.ProductService"
	StockServiceName   = "rental.v1.StockService"
)

type Product struct {
	Id          string          `json:"id"`
	Sku         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Brand       string          `json:"brand,omitempty"`
	Kind        string          `json:"kind"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	RentalPrice decimal.Decimal `json:"rental_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateProductRequest struct {
	Sku         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	Kind        string          `json:"kind"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	RentalPrice decimal.Decimal `json:"rental_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
}

type GetProductRequest struct {
	Id string `json:"id"`
}

type ListProductsRequest struct {
	Kind       string `json:"kind"`
	ActiveOnly bool   `json:"active_only"`
	Search     string `json:"search"`
	SortBy     string `json:"sort_by"`
	SortOrder  string `json:"sort_order"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
}

type ListProductsResponse struct {
	Products []*Product `json:"products"`
	Total    int32      `json:"total"`
}

type UpdateProductRequest struct {
	Id          string          `json:"id"`
	Sku         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Brand       string          `json:"brand"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	RentalPrice decimal.Decimal `json:"rental_price"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	IsActive    bool            `json:"is_active"`
}

type DeleteProductRequest struct {
	Id string `json:"id"`
}

type ProductServiceServer interface {
	CreateProduct(context.Context, *CreateProductRequest) (*Product, error)
	GetProduct(context.Context, *GetProductRequest) (*Product, error)
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	UpdateProduct(context.Context, *UpdateProductRequest) (*Product, error)
	DeleteProduct(context.Context, *DeleteProductRequest) (*Empty, error)
}

var ProductService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ProductServiceName,
	HandlerType: (*ProductServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(ProductServiceName, "CreateProduct", ProductServiceServer.CreateProduct),
		unaryMethod(ProductServiceName, "GetProduct", ProductServiceServer.GetProduct),
		unaryMethod(ProductServiceName, "ListProducts", ProductServiceServer.ListProducts),
		unaryMethod(ProductServiceName, "UpdateProduct", ProductServiceServer.UpdateProduct),
		unaryMethod(ProductServiceName, "DeleteProduct", ProductServiceServer.DeleteProduct),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterProductServiceServer(s grpc.ServiceRegistrar, srv ProductServiceServer) {
	s.RegisterService(&ProductService_ServiceDesc, srv)
}

type StockItem struct {
	Id           string    `json:"id,omitempty"`
	OfficeId     string    `json:"office_id"`
	ProductId    string    `json:"product_id"`
	Quantity     int32     `json:"quantity"`
	ReorderPoint int32     `json:"reorder_point"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type StockMovement struct {
	Id             string    `json:"id"`
	OfficeId       string    `json:"office_id"`
	ProductId      string    `json:"product_id"`
	MovementType   string    `json:"movement_type"`
	QuantityChange int32     `json:"quantity_change"`
	QuantityBefore int32     `json:"quantity_before"`
	QuantityAfter  int32     `json:"quantity_after"`
	ReferenceType  string    `json:"reference_type,omitempty"`
	ReferenceId    string    `json:"reference_id,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedBy      string    `json:"created_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type GetStockRequest struct {
	OfficeId  string `json:"office_id"`
	ProductId string `json:"product_id"`
}

type ListStockRequest struct {
	OfficeId  string `json:"office_id"`
	ProductId string `json:"product_id"`
	LowStock  bool   `json:"low_stock"`
	Page      int32  `json:"page"`
	PageSize  int32  `json:"page_size"`
}

type ListStockResponse struct {
	Items []*StockItem `json:"items"`
	Total int32        `json:"total"`
}

type AdjustStockRequest struct {
	OfficeId       string `json:"office_id"`
	ProductId      string `json:"product_id"`
	QuantityChange int32  `json:"quantity_change"`
	Reason         string `json:"reason"`
}

type ListStockMovementsRequest struct {
	OfficeId     string `json:"office_id"`
	ProductId    string `json:"product_id"`
	MovementType string `json:"movement_type"`
	ReferenceId  string `json:"reference_id"`
	Page         int32  `json:"page"`
	PageSize     int32  `json:"page_size"`
}

type ListStockMovementsResponse struct {
	Movements []*StockMovement `json:"movements"`
	Total     int32            `json:"total"`
}

type StockServiceServer interface {
	GetStock(context.Context, *GetStockRequest) (*StockItem, error)
	ListStock(context.Context, *ListStockRequest) (*ListStockResponse, error)
	AdjustStock(context.Context, *AdjustStockRequest) (*StockItem, error)
	ListStockMovements(context.Context, *ListStockMovementsRequest) (*ListStockMovementsResponse, error)
}

var StockService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: StockServiceName,
	HandlerType: (*StockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(StockServiceName, "GetStock", StockServiceServer.GetStock),
		unaryMethod(StockServiceName, "ListStock", StockServiceServer.ListStock),
		unaryMethod(StockServiceName, "AdjustStock", StockServiceServer.AdjustStock),
		unaryMethod(StockServiceName, "ListStockMovements", StockServiceServer.ListStockMovements),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterStockServiceServer(s grpc.ServiceRegistrar, srv StockServiceServer) {
	s.RegisterService(&StockService_ServiceDesc, srv)
}
