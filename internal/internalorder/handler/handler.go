package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/internalorder"
	"github.com/fekuna/omnipos-rental-service/internal/internalorder/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

var _ rentalv1.InternalOrderServiceServer = (*InternalOrderHandler)(nil)

type InternalOrderHandler struct {
	uc     internalorder.UseCase
	logger logger.ZapLogger
}

func NewInternalOrderHandler(uc internalorder.UseCase, log logger.ZapLogger) *InternalOrderHandler {
	return &InternalOrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InternalOrderHandler) CreateInternalOrder(ctx context.Context, req *rentalv1.CreateInternalOrderRequest) (*rentalv1.InternalOrder, error) {
	input := &dto.CreateInternalOrderInput{
		SourceOfficeID:      req.SourceOfficeId,
		DestinationOfficeID: req.DestinationOfficeId,
		Notes:               req.Notes,
		UserID:              auth.GetUserID(ctx),
	}
	for _, l := range req.Lines {
		if l == nil {
			continue
		}
		input.Lines = append(input.Lines, dto.LineInput{ProductID: l.ProductId, Quantity: int(l.Quantity)})
	}

	o, err := h.uc.CreateInternalOrder(ctx, input)
	if err != nil {
		h.logger.Error("failed to create internal order", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOrderToProto(o), nil
}

func (h *InternalOrderHandler) GetInternalOrder(ctx context.Context, req *rentalv1.GetInternalOrderRequest) (*rentalv1.InternalOrder, error) {
	o, err := h.uc.GetInternalOrder(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOrderToProto(o), nil
}

func (h *InternalOrderHandler) ListInternalOrders(ctx context.Context, req *rentalv1.ListInternalOrdersRequest) (*rentalv1.ListInternalOrdersResponse, error) {
	orders, count, err := h.uc.ListInternalOrders(ctx, &dto.InternalOrderFilters{
		OfficeID: req.OfficeId,
		Status:   req.Status,
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list internal orders", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	out := make([]*rentalv1.InternalOrder, len(orders))
	for i := range orders {
		out[i] = mapOrderToProto(&orders[i])
	}
	return &rentalv1.ListInternalOrdersResponse{Orders: out, Total: int32(count)}, nil
}

func (h *InternalOrderHandler) CompleteInternalOrder(ctx context.Context, req *rentalv1.InternalOrderActionRequest) (*rentalv1.InternalOrder, error) {
	o, err := h.uc.CompleteInternalOrder(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOrderToProto(o), nil
}

func (h *InternalOrderHandler) CancelInternalOrder(ctx context.Context, req *rentalv1.InternalOrderActionRequest) (*rentalv1.InternalOrder, error) {
	o, err := h.uc.CancelInternalOrder(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOrderToProto(o), nil
}

func mapOrderToProto(o *model.InternalOrder) *rentalv1.InternalOrder {
	lines := make([]*rentalv1.OrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = &rentalv1.OrderLine{Id: l.ID, ProductId: l.ProductID, Quantity: int32(l.Quantity)}
	}
	return &rentalv1.InternalOrder{
		Id:                  o.ID,
		SourceOfficeId:      o.SourceOfficeID,
		DestinationOfficeId: o.DestinationOfficeID,
		Status:              string(o.Status),
		Notes:               o.Notes,
		CreatedBy:           model.Deref(o.CreatedBy),
		Lines:               lines,
		CompletedAt:         o.CompletedAt,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}
