package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/client"
	"github.com/fekuna/omnipos-rental-service/internal/client/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

var _ rentalv1.ClientServiceServer = (*ClientHandler)(nil)

type ClientHandler struct {
	uc     client.UseCase
	logger logger.ZapLogger
}

func NewClientHandler(uc client.UseCase, log logger.ZapLogger) *ClientHandler {
	return &ClientHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ClientHandler) CreateClient(ctx context.Context, req *rentalv1.CreateClientRequest) (*rentalv1.Client, error) {
	c, err := h.uc.CreateClient(ctx, &dto.CreateClientInput{
		FullName:       req.FullName,
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
	})
	if err != nil {
		h.logger.Error("failed to create client", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapModelToProto(c), nil
}

func (h *ClientHandler) GetClient(ctx context.Context, req *rentalv1.GetClientRequest) (*rentalv1.Client, error) {
	c, err := h.uc.GetClient(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapModelToProto(c), nil
}

func (h *ClientHandler) ListClients(ctx context.Context, req *rentalv1.ListClientsRequest) (*rentalv1.ListClientsResponse, error) {
	clients, count, err := h.uc.ListClients(ctx, &dto.ClientFilters{
		Search:     req.Search,
		ActiveOnly: req.ActiveOnly,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list clients", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	out := make([]*rentalv1.Client, len(clients))
	for i := range clients {
		out[i] = mapModelToProto(&clients[i])
	}
	return &rentalv1.ListClientsResponse{Clients: out, Total: int32(count)}, nil
}

func (h *ClientHandler) UpdateClient(ctx context.Context, req *rentalv1.UpdateClientRequest) (*rentalv1.Client, error) {
	c, err := h.uc.UpdateClient(ctx, &dto.UpdateClientInput{
		ID:             req.Id,
		FullName:       req.FullName,
		DocumentNumber: req.DocumentNumber,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapModelToProto(c), nil
}

func (h *ClientHandler) DeleteClient(ctx context.Context, req *rentalv1.DeleteClientRequest) (*rentalv1.Empty, error) {
	if err := h.uc.DeleteClient(ctx, req.Id); err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return &rentalv1.Empty{}, nil
}

func mapModelToProto(c *model.Client) *rentalv1.Client {
	if c == nil {
		return nil
	}
	return &rentalv1.Client{
		Id:             c.ID,
		FullName:       c.FullName,
		DocumentNumber: c.DocumentNumber,
		Email:          model.Deref(c.Email),
		Phone:          model.Deref(c.Phone),
		Address:        model.Deref(c.Address),
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
