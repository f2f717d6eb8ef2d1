package rentalv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

const ClientServiceName = "rental.v1.ClientService"

type Client struct {
	Id             string    `json:"id"`
	FullName       string    `json:"full_name"`
	DocumentNumber string    `json:"document_number"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CreateClientRequest struct {
	FullName       string `json:"full_name"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

type GetClientRequest struct {
	Id string `json:"id"`
}

type ListClientsRequest struct {
	Search     string `json:"search"`
	ActiveOnly bool   `json:"active_only"`
	Page       int32  `json:"page"`
	PageSize   int32  `json:"page_size"`
}

type ListClientsResponse struct {
	Clients []*Client `json:"clients"`
	Total   int32     `json:"total"`
}

type UpdateClientRequest struct {
	Id             string `json:"id"`
	FullName       string `json:"full_name"`
	DocumentNumber string `json:"document_number"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	IsActive       bool   `json:"is_active"`
}

type DeleteClientRequest struct {
	Id string `json:"id"`
}

type ClientServiceServer interface {
	CreateClient(context.Context, *CreateClientRequest) (*Client, error)
	GetClient(context.Context, *GetClientRequest) (*Client, error)
	ListClients(context.Context, *ListClientsRequest) (*ListClientsResponse, error)
	UpdateClient(context.Context, *UpdateClientRequest) (*Client, error)
	DeleteClient(context.Context, *DeleteClientRequest) (*Empty, error)
}

var ClientService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ClientServiceName,
	HandlerType: (*ClientServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod(ClientServiceName, "CreateClient", ClientServiceServer.CreateClient),
		unaryMethod(ClientServiceName, "GetClient", ClientServiceServer.GetClient),
		unaryMethod(ClientServiceName, "ListClients", ClientServiceServer.ListClients),
		unaryMethod(ClientServiceName, "UpdateClient", ClientServiceServer.UpdateClient),
		unaryMethod(ClientServiceName, "DeleteClient", ClientServiceServer.DeleteClient),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterClientServiceServer(s grpc.ServiceRegistrar, srv ClientServiceServer) {
	s.RegisterService(&ClientService_ServiceDesc, srv)
}
