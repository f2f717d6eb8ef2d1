package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/office"
	"github.com/fekuna/omnipos-rental-service/internal/office/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

var _ rentalv1.OfficeServiceServer = (*OfficeHandler)(nil)

type OfficeHandler struct {
	uc     office.UseCase
	logger logger.ZapLogger
}

func NewOfficeHandler(uc office.UseCase, log logger.ZapLogger) *OfficeHandler {
	return &OfficeHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OfficeHandler) CreateOffice(ctx context.Context, req *rentalv1.CreateOfficeRequest) (*rentalv1.Office, error) {
	o, err := h.uc.CreateOffice(ctx, &dto.CreateOfficeInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		h.logger.Error("failed to create office", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOfficeToProto(o), nil
}

func (h *OfficeHandler) GetOffice(ctx context.Context, req *rentalv1.GetOfficeRequest) (*rentalv1.Office, error) {
	o, err := h.uc.GetOffice(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOfficeToProto(o), nil
}

func (h *OfficeHandler) ListOffices(ctx context.Context, req *rentalv1.ListOfficesRequest) (*rentalv1.ListOfficesResponse, error) {
	offices, count, err := h.uc.ListOffices(ctx, &dto.OfficeFilters{
		ActiveOnly: req.ActiveOnly,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list offices", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	out := make([]*rentalv1.Office, len(offices))
	for i := range offices {
		out[i] = mapOfficeToProto(&offices[i])
	}
	return &rentalv1.ListOfficesResponse{Offices: out, Total: int32(count)}, nil
}

func (h *OfficeHandler) UpdateOffice(ctx context.Context, req *rentalv1.UpdateOfficeRequest) (*rentalv1.Office, error) {
	o, err := h.uc.UpdateOffice(ctx, &dto.UpdateOfficeInput{
		ID:       req.Id,
		Name:     req.Name,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapOfficeToProto(o), nil
}

func mapOfficeToProto(o *model.Office) *rentalv1.Office {
	return &rentalv1.Office{
		Id:        o.ID,
		Name:      o.Name,
		Address:   o.Address,
		Phone:     model.Deref(o.Phone),
		IsActive:  o.IsActive,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}
