package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/supplier"
	"github.com/fekuna/omnipos-rental-service/internal/supplier/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

type SupplierHandler struct {
	uc     supplier.UseCase
	logger logger.ZapLogger
}

func NewSupplierHandler(uc supplier.UseCase, log logger.ZapLogger) *SupplierHandler {
	return &SupplierHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *SupplierHandler) CreateSupplier(ctx context.Context, req *rentalv1.CreateSupplierRequest) (*rentalv1.Supplier, error) {
	s, err := h.uc.CreateSupplier(ctx, &dto.CreateSupplierInput{
		Name:        req.Name,
		TaxID:       req.TaxId,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
	})
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapSupplierToProto(s), nil
}

func (h *SupplierHandler) GetSupplier(ctx context.Context, req *rentalv1.GetSupplierRequest) (*rentalv1.Supplier, error) {
	s, err := h.uc.GetSupplier(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapSupplierToProto(s), nil
}

func (h *SupplierHandler) ListSuppliers(ctx context.Context, req *rentalv1.ListSuppliersRequest) (*rentalv1.ListSuppliersResponse, error) {
	suppliers, count, err := h.uc.ListSuppliers(ctx, &dto.SupplierFilters{
		Search:     req.Search,
		ActiveOnly: req.ActiveOnly,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list suppliers", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	out := make([]*rentalv1.Supplier, len(suppliers))
	for i := range suppliers {
		out[i] = mapSupplierToProto(&suppliers[i])
	}
	return &rentalv1.ListSuppliersResponse{Suppliers: out, Total: int32(count)}, nil
}

func (h *SupplierHandler) UpdateSupplier(ctx context.Context, req *rentalv1.UpdateSupplierRequest) (*rentalv1.Supplier, error) {
	s, err := h.uc.UpdateSupplier(ctx, &dto.UpdateSupplierInput{
		ID:          req.Id,
		Name:        req.Name,
		TaxID:       req.TaxId,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapSupplierToProto(s), nil
}

func mapSupplierToProto(s *model.Supplier) *rentalv1.Supplier {
	return &rentalv1.Supplier{
		Id:          s.ID,
		Name:        s.Name,
		TaxId:       s.TaxID,
		ContactName: model.Deref(s.ContactName),
		Email:       model.Deref(s.Email),
		Phone:       model.Deref(s.Phone),
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
