package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/stock"
	"github.com/fekuna/omnipos-rental-service/internal/stock/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

var _ rentalv1.StockServiceServer = (*StockHandler)(nil)

type StockHandler struct {
	uc     stock.UseCase
	logger logger.ZapLogger
}

func NewStockHandler(uc stock.UseCase, log logger.ZapLogger) *StockHandler {
	return &StockHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StockHandler) GetStock(ctx context.Context, req *rentalv1.GetStockRequest) (*rentalv1.StockItem, error) {
	if req.OfficeId == "" || req.ProductId == "" {
		return nil, apperr.ToStatus(ctx, apperr.Invalid("office_id and product_id are required"))
	}

	item, err := h.uc.GetStock(ctx, req.OfficeId, req.ProductId)
	if err != nil {
		h.logger.Error("failed to get stock", zap.String("office_id", req.OfficeId), zap.String("product_id", req.ProductId), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapStockToProto(item), nil
}

func (h *StockHandler) ListStock(ctx context.Context, req *rentalv1.ListStockRequest) (*rentalv1.ListStockResponse, error) {
	items, count, err := h.uc.ListStock(ctx, &dto.StockFilters{
		OfficeID:  req.OfficeId,
		ProductID: req.ProductId,
		LowStock:  req.LowStock,
		Page:      int(req.Page),
		PageSize:  int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list stock", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	entries := make([]*rentalv1.StockItem, len(items))
	for i := range items {
		entries[i] = mapStockToProto(&items[i])
	}

	return &rentalv1.ListStockResponse{
		Items: entries,
		Total: int32(count),
	}, nil
}

func (h *StockHandler) AdjustStock(ctx context.Context, req *rentalv1.AdjustStockRequest) (*rentalv1.StockItem, error) {
	item, err := h.uc.AdjustStock(ctx, &dto.AdjustStockInput{
		OfficeID:       req.OfficeId,
		ProductID:      req.ProductId,
		QuantityChange: int(req.QuantityChange),
		Reason:         req.Reason,
		UserID:         auth.GetUserID(ctx),
	})
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapStockToProto(item), nil
}

func (h *StockHandler) ListStockMovements(ctx context.Context, req *rentalv1.ListStockMovementsRequest) (*rentalv1.ListStockMovementsResponse, error) {
	mvs, count, err := h.uc.ListMovements(ctx, &dto.MovementFilters{
		OfficeID:     req.OfficeId,
		ProductID:    req.ProductId,
		MovementType: req.MovementType,
		ReferenceID:  req.ReferenceId,
		Page:         int(req.Page),
		PageSize:     int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list stock movements", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	out := make([]*rentalv1.StockMovement, len(mvs))
	for i := range mvs {
		out[i] = mapMovementToProto(&mvs[i])
	}

	return &rentalv1.ListStockMovementsResponse{
		Movements: out,
		Total:     int32(count),
	}, nil
}

func mapStockToProto(m *model.StockItem) *rentalv1.StockItem {
	if m == nil {
		return nil
	}
	return &rentalv1.StockItem{
		Id:           m.ID,
		OfficeId:     m.OfficeID,
		ProductId:    m.ProductID,
		Quantity:     int32(m.Quantity),
		ReorderPoint: int32(m.ReorderPoint),
		UpdatedAt:    m.UpdatedAt,
	}
}

func mapMovementToProto(m *model.StockMovement) *rentalv1.StockMovement {
	if m == nil {
		return nil
	}
	refType := ""
	if m.ReferenceType != nil {
		refType = *m.ReferenceType
	}
	refID := ""
	if m.ReferenceID != nil {
		refID = *m.ReferenceID
	}
	createdBy := ""
	if m.CreatedBy != nil {
		createdBy = *m.CreatedBy
	}

	return &rentalv1.StockMovement{
		Id:             m.ID,
		OfficeId:       m.OfficeID,
		ProductId:      m.ProductID,
		MovementType:   string(m.MovementType),
		QuantityChange: int32(m.QuantityChange),
		QuantityBefore: int32(m.QuantityBefore),
		QuantityAfter:  int32(m.QuantityAfter),
		ReferenceType:  refType,
		ReferenceId:    refID,
		Notes:          m.Notes,
		CreatedBy:      createdBy,
		CreatedAt:      m.CreatedAt,
	}
}
