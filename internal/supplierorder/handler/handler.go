package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/supplierorder"
	"github.com/fekuna/omnipos-rental-service/internal/supplierorder/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

var _ rentalv1.SupplierOrderServiceServer = (*SupplierOrderHandler)(nil)

type SupplierOrderHandler struct {
	uc     supplierorder.UseCase
	logger logger.ZapLogger
}

func NewSupplierOrderHandler(uc supplierorder.UseCase, log logger.ZapLogger) *SupplierOrderHandler {
	return &SupplierOrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SupplierOrderHandler) CreateSupplierOrder(ctx context.Context, req *rentalv1.CreateSupplierOrderRequest) (*rentalv1.SupplierOrder, error) {
	input := &dto.CreateSupplierOrderInput{
		SupplierID: req.SupplierId,
		OfficeID:   req.OfficeId,
		Notes:      req.Notes,
		ExpectedAt: req.ExpectedAt,
		UserID:     auth.GetUserID(ctx),
	}
	for _, l := range req.Lines {
		if l == nil {
			continue
		}
		input.Lines = append(input.Lines, dto.LineInput{
			ProductID: l.ProductId,
			Quantity:  int(l.Quantity),
			UnitCost:  l.UnitCost,
		})
	}

	o, err := h.uc.CreateSupplierOrder(ctx, input)
	if err != nil {
		h.logger.Error("failed to create supplier order", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOrderToProto(o), nil
}

func (h *SupplierOrderHandler) GetSupplierOrder(ctx context.Context, req *rentalv1.GetSupplierOrderRequest) (*rentalv1.SupplierOrder, error) {
	o, err := h.uc.GetSupplierOrder(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOrderToProto(o), nil
}

func (h *SupplierOrderHandler) ListSupplierOrders(ctx context.Context, req *rentalv1.ListSupplierOrdersRequest) (*rentalv1.ListSupplierOrdersResponse, error) {
	orders, count, err := h.uc.ListSupplierOrders(ctx, &dto.SupplierOrderFilters{
		SupplierID: req.SupplierId,
		OfficeID:   req.OfficeId,
		Status:     req.Status,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list supplier orders", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	out := make([]*rentalv1.SupplierOrder, len(orders))
	for i := range orders {
		out[i] = mapOrderToProto(&orders[i])
	}
	return &rentalv1.ListSupplierOrdersResponse{Orders: out, Total: int32(count)}, nil
}

func (h *SupplierOrderHandler) ReceiveSupplierOrder(ctx context.Context, req *rentalv1.SupplierOrderActionRequest) (*rentalv1.SupplierOrder, error) {
	o, err := h.uc.ReceiveSupplierOrder(ctx, req.Id)
	if err != nil {
		h.logger.Error("failed to receive supplier order", zap.String("supplier_order_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOrderToProto(o), nil
}

func (h *SupplierOrderHandler) CancelSupplierOrder(ctx context.Context, req *rentalv1.SupplierOrderActionRequest) (*rentalv1.SupplierOrder, error) {
	o, err := h.uc.CancelSupplierOrder(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOrderToProto(o), nil
}

func mapOrderToProto(o *model.SupplierOrder) *rentalv1.SupplierOrder {
	lines := make([]*rentalv1.SupplierOrderLine, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = &rentalv1.SupplierOrderLine{
			Id:        l.ID,
			ProductId: l.ProductID,
			Quantity:  int32(l.Quantity),
			UnitCost:  l.UnitCost,
			Subtotal:  l.Subtotal,
		}
	}
	return &rentalv1.SupplierOrder{
		Id:         o.ID,
		SupplierId: o.SupplierID,
		OfficeId:   o.OfficeID,
		Status:     string(o.Status),
		Total:      o.Total,
		Notes:      o.Notes,
		ExpectedAt: o.ExpectedAt,
		ReceivedAt: o.ReceivedAt,
		CreatedBy:  model.Deref(o.CreatedBy),
		Lines:      lines,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}
