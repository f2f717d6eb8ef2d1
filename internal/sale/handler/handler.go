package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/sale"
	"github.com/fekuna/omnipos-rental-service/internal/sale/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

var _ rentalv1.SaleServiceServer = (*SaleHandler)(nil)

type SaleHandler struct {
	uc     sale.UseCase
	logger logger.ZapLogger
}

func NewSaleHandler(uc sale.UseCase, log logger.ZapLogger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SaleHandler) CreateSale(ctx context.Context, req *rentalv1.CreateSaleRequest) (*rentalv1.Sale, error) {
	input := &dto.CreateSaleInput{
		OfficeID:      req.OfficeId,
		ClientID:      req.ClientId,
		PaymentMethod: req.PaymentMethod,
		UserID:        auth.GetUserID(ctx),
	}
	for _, l := range req.Lines {
		if l == nil {
			continue
		}
		input.Lines = append(input.Lines, dto.LineInput{
			ProductID: l.ProductId,
			Quantity:  int(l.Quantity),
			UnitPrice: l.UnitPrice,
			Discount:  l.Discount,
		})
	}

	s, err := h.uc.CreateSale(ctx, input)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapSaleToProto(s), nil
}

func (h *SaleHandler) GetSale(ctx context.Context, req *rentalv1.GetSaleRequest) (*rentalv1.Sale, error) {
	s, err := h.uc.GetSale(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapSaleToProto(s), nil
}

func (h *SaleHandler) ListSales(ctx context.Context, req *rentalv1.ListSalesRequest) (*rentalv1.ListSalesResponse, error) {
	sales, count, err := h.uc.ListSales(ctx, &dto.SaleFilters{
		OfficeID: req.OfficeId,
		ClientID: req.ClientId,
		Status:   req.Status,
		From:     req.From,
		To:       req.To,
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list sales", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	out := make([]*rentalv1.Sale, len(sales))
	for i := range sales {
		out[i] = mapSaleToProto(&sales[i])
	}
	return &rentalv1.ListSalesResponse{Sales: out, Total: int32(count)}, nil
}

func (h *SaleHandler) CancelSale(ctx context.Context, req *rentalv1.CancelSaleRequest) (*rentalv1.Sale, error) {
	s, err := h.uc.CancelSale(ctx, req.Id, req.Reason)
	if err != nil {
		h.logger.Error("failed to cancel sale", zap.String("sale_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapSaleToProto(s), nil
}

func mapSaleToProto(s *model.Sale) *rentalv1.Sale {
	lines := make([]*rentalv1.SaleLine, len(s.Lines))
	for i, l := range s.Lines {
		unit := l.UnitPrice
		lines[i] = &rentalv1.SaleLine{
			Id:        l.ID,
			ProductId: l.ProductID,
			Quantity:  int32(l.Quantity),
			UnitPrice: &unit,
			Discount:  l.Discount,
			Subtotal:  l.Subtotal,
		}
	}
	return &rentalv1.Sale{
		Id:            s.ID,
		OfficeId:      s.OfficeID,
		ClientId:      model.Deref(s.ClientID),
		Status:        string(s.Status),
		PaymentMethod: string(s.PaymentMethod),
		Total:         s.Total,
		CreatedBy:     model.Deref(s.CreatedBy),
		Lines:         lines,
		CanceledAt:    s.CanceledAt,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
