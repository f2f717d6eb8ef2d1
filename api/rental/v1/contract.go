package rentalv1

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc"
)

const ContractServiceName = "rental.v1.ContractService"

type ItemService struct {
	Id    string          `json:"id,omitempty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type ContractItem struct {
	Id               string          `json:"id"`
	ProductId        string          `json:"product_id"`
	Quantity         int32           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Days             int32           `json:"days"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ReturnedQuantity int32           `json:"returned_quantity"`
	MissingQuantity  int32           `json:"missing_quantity"`
	Services         []*ItemService  `json:"services"`
}

type StatusChange struct {
	FromStatus string    `json:"from_status,omitempty"`
	ToStatus   string    `json:"to_status"`
	Notes      string    `json:"notes,omitempty"`
	ChangedBy  string    `json:"changed_by,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

type Contract struct {
	Id         string          `json:"id"`
	Number     string          `json:"number"`
	ClientId   string          `json:"client_id"`
	OfficeId   string          `json:"office_id"`
	Status     string          `json:"status"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Discount   decimal.Decimal `json:"discount"`
	Total      decimal.Decimal `json:"total"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	Balance    decimal.Decimal `json:"balance"`
	Notes      string          `json:"notes,omitempty"`
	CreatedBy  string          `json:"created_by,omitempty"`
	Items      []*ContractItem `json:"items"`
	History    []*StatusChange `json:"history"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type ContractItemInput struct {
	ProductId string           `json:"product_id"`
	Quantity  int32            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
	Services  []*ItemService   `json:"services"`
}

type CreateContractRequest struct {
	ClientId  string               `json:"client_id"`
	OfficeId  string               `json:"office_id"`
	StartDate time.Time            `json:"start_date"`
	EndDate   time.Time            `json:"end_date"`
	Discount  decimal.Decimal      `json:"discount"`
	Notes     string               `json:"notes"`
	Items     []*ContractItemInput `json:"items"`
}

type GetContractRequest struct {
	Id string `json:"id"`
}

type ListContractsRequest struct {
	ClientId string     `json:"client_id"`
	OfficeId string     `json:"office_id"`
	Status   string     `json:"status"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
	Page     int32      `json:"page"`
	PageSize int32      `json:"page_size"`
}

type ListContractsResponse struct {
	Contracts []*Contract `json:"contracts"`
	Total     int32       `json:"total"`
}

type UpdateContractItemsRequest struct {
	Id        string               `json:"id"`
	StartDate *time.Time           `json:"start_date,omitempty"`
	EndDate   *time.Time           `json:"end_date,omitempty"`
	Discount  *decimal.Decimal     `json:"discount,omitempty"`
	Items     []*ContractItemInput `json:"items"`
}

type RegisterPaymentRequest struct {
	Id     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"notes"`
}

type ContractActionRequest struct {
	Id    string `json:"id"`
	Notes string `json:"notes"`
}

type ReturnItem struct {
	ItemId           string `json:"item_id"`
	ReturnedQuantity int32  `json:"returned_quantity"`
}

type ReturnContractRequest struct {
	Id    string        `json:"id"`
	Notes string        `json:"notes"`
	Items []*ReturnItem `json:"items"`
}

type ContractServiceServer interface {
	CreateContract(context.Context, *CreateContractRequest) (*Contract, error)
	GetContract(context.Context, *GetContractRequest) (*Contract, error)
	ListContracts(context.Context, *ListContractsRequest) (*ListContractsResponse, error)
	UpdateContractItems(context.Context, *UpdateContractItemsRequest) (*Contract, error)
	RegisterPayment(context.Context, *RegisterPaymentRequest) (*Contract, error)
	ActivateContract(context.Context, *ContractActionRequest) (*Contract, error)
	FinishContract(context.Context, *ContractActionRequest) (*Contract, error)
	ReturnContract(context.Context, *ReturnContractRequest) (*Contract, error)
	CancelContract(context.Context, *ContractActionRequest) (*Contract, error)
}

var ContractService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ContractServiceName,
	HandlerType: (*ContractServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(ContractServiceName, "CreateContract", ContractServiceServer.CreateContract),
		unaryMethod(ContractServiceName, "GetContract", ContractServiceServer.GetContract),
		unaryMethod(ContractServiceName, "ListContracts", ContractServiceServer.ListContracts),
		unaryMethod(ContractServiceName, "UpdateContractItems", ContractServiceServer.UpdateContractItems),
		unaryMethod(ContractServiceName, "RegisterPayment", ContractServiceServer.RegisterPayment),
		unaryMethod(ContractServiceName, "ActivateContract", ContractServiceServer.ActivateContract),
		unaryMethod(ContractServiceName, "FinishContract", ContractServiceServer.FinishContract),
		unaryMethod(ContractServiceName, "ReturnContract", ContractServiceServer.ReturnContract),
		unaryMethod(ContractServiceName, "CancelContract", ContractServiceServer.CancelContract),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterContractServiceServer(s grpc.ServiceRegistrar, srv ContractServiceServer) {
	s.RegisterService(&ContractService_ServiceDesc, srv)
}
