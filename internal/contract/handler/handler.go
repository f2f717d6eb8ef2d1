package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/contract"
	"github.com/fekuna/omnipos-rental-service/internal/contract/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

var _ rentalv1.ContractServiceServer = (*ContractHandler)(nil)

type ContractHandler struct {
	uc     contract.UseCase
	logger logger.ZapLogger
}

func NewContractHandler(uc contract.UseCase, log logger.ZapLogger) *ContractHandler {
	return &ContractHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ContractHandler) CreateContract(ctx context.Context, req *rentalv1.CreateContractRequest) (*rentalv1.Contract, error) {
	c, err := h.uc.CreateContract(ctx, &dto.CreateContractInput{
		ClientID:  req.ClientId,
		OfficeID:  req.OfficeId,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Discount:  req.Discount,
		Notes:     req.Notes,
		Items:     mapItemInputs(req.Items),
		UserID:    auth.GetUserID(ctx),
	})
	if err != nil {
		h.logger.Error("failed to create contract", zap.String("client_id", req.ClientId), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapContractToProto(c), nil
}

func (h *ContractHandler) GetContract(ctx context.Context, req *rentalv1.GetContractRequest) (*rentalv1.Contract, error) {
	c, err := h.uc.GetContract(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapContractToProto(c), nil
}

func (h *ContractHandler) ListContracts(ctx context.Context, req *rentalv1.ListContractsRequest) (*rentalv1.ListContractsResponse, error) {
	contracts, count, err := h.uc.ListContracts(ctx, &dto.ContractFilters{
		ClientID: req.ClientId,
		OfficeID: req.OfficeId,
		Status:   req.Status,
		From:     req.From,
		To:       req.To,
		Page:     int(req.Page),
		PageSize: int(req.PageSize),
	})
	if err != nil {
		h.logger.Error("failed to list contracts", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	out := make([]*rentalv1.Contract, len(contracts))
	for i := range contracts {
		out[i] = mapContractToProto(&contracts[i])
	}
	return &rentalv1.ListContractsResponse{Contracts: out, Total: int32(count)}, nil
}

func (h *ContractHandler) UpdateContractItems(ctx context.Context, req *rentalv1.UpdateContractItemsRequest) (*rentalv1.Contract, error) {
	c, err := h.uc.UpdateContractItems(ctx, &dto.UpdateContractItemsInput{
		ID:        req.Id,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Discount:  req.Discount,
		Items:     mapItemInputs(req.Items),
	})
	if err != nil {
		h.logger.Error("failed to update contract items", zap.String("contract_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapContractToProto(c), nil
}

func (h *ContractHandler) RegisterPayment(ctx context.Context, req *rentalv1.RegisterPaymentRequest) (*rentalv1.Contract, error) {
	c, err := h.uc.RegisterPayment(ctx, req.Id, req.Amount, req.Notes)
	if err != nil {
		h.logger.Error("failed to register payment", zap.String("contract_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapContractToProto(c), nil
}

func (h *ContractHandler) ActivateContract(ctx context.Context, req *rentalv1.ContractActionRequest) (*rentalv1.Contract, error) {
	c, err := h.uc.ActivateContract(ctx, req.Id, req.Notes)
	if err != nil {
		h.logger.Error("failed to activate contract", zap.String("contract_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapContractToProto(c), nil
}

func (h *ContractHandler) FinishContract(ctx context.Context, req *rentalv1.ContractActionRequest) (*rentalv1.Contract, error) {
	c, err := h.uc.FinishContract(ctx, req.Id, req.Notes)
	if err != nil {
		h.logger.Error("failed to finish contract", zap.String("contract_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapContractToProto(c), nil
}

func (h *ContractHandler) ReturnContract(ctx context.Context, req *rentalv1.ReturnContractRequest) (*rentalv1.Contract, error) {
	input := &dto.ReturnContractInput{ID: req.Id, Notes: req.Notes}
	if len(req.Items) > 0 {
		input.Items = make(map[string]int, len(req.Items))
		for _, it := range req.Items {
			if it == nil {
				continue
			}
			if _, dup := input.Items[it.ItemId]; dup {
				return nil, apperr.ToStatus(ctx, apperr.Invalid("item %s is listed more than once", it.ItemId))
			}
			input.Items[it.ItemId] = int(it.ReturnedQuantity)
		}
	}

	c, err := h.uc.ReturnContract(ctx, input)
	if err != nil {
		h.logger.Error("failed to return contract", zap.String("contract_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapContractToProto(c), nil
}

func (h *ContractHandler) CancelContract(ctx context.Context, req *rentalv1.ContractActionRequest) (*rentalv1.Contract, error) {
	c, err := h.uc.CancelContract(ctx, req.Id, req.Notes)
	if err != nil {
		h.logger.Error("failed to cancel contract", zap.String("contract_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapContractToProto(c), nil
}

func mapItemInputs(items []*rentalv1.ContractItemInput) []dto.ItemInput {
	out := make([]dto.ItemInput, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		in := dto.ItemInput{
			ProductID: it.ProductId,
			Quantity:  int(it.Quantity),
			UnitPrice: it.UnitPrice,
		}
		for _, s := range it.Services {
			if s == nil {
				continue
			}
			in.Services = append(in.Services, dto.ServiceInput{Name: s.Name, Price: s.Price})
		}
		out = append(out, in)
	}
	return out
}

func mapContractToProto(c *model.Contract) *rentalv1.Contract {
	out := &rentalv1.Contract{
		Id:         c.ID,
		Number:     c.Number,
		ClientId:   c.ClientID,
		OfficeId:   c.OfficeID,
		Status:     string(c.Status),
		StartDate:  c.StartDate,
		EndDate:    c.EndDate,
		Subtotal:   c.Subtotal,
		Discount:   c.Discount,
		Total:      c.Total,
		AmountPaid: c.AmountPaid,
		Balance:    c.Balance(),
		Notes:      c.Notes,
		CreatedBy:  model.Deref(c.CreatedBy),
		Items:      make([]*rentalv1.ContractItem, len(c.Items)),
		History:    make([]*rentalv1.StatusChange, len(c.History)),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}

	for i, it := range c.Items {
		item := &rentalv1.ContractItem{
			Id:               it.ID,
			ProductId:        it.ProductID,
			Quantity:         int32(it.Quantity),
			UnitPrice:        it.UnitPrice,
			Days:             int32(it.Days),
			Subtotal:         it.Subtotal,
			ReturnedQuantity: int32(it.ReturnedQuantity),
			MissingQuantity:  int32(it.MissingQuantity),
			Services:         make([]*rentalv1.ItemService, len(it.Services)),
		}
		for j, s := range it.Services {
			item.Services[j] = &rentalv1.ItemService{Id: s.ID, Name: s.Name, Price: s.Price}
		}
		out.Items[i] = item
	}

	for i, h := range c.History {
		ch := &rentalv1.StatusChange{
			ToStatus:  string(h.ToStatus),
			Notes:     h.Notes,
			ChangedBy: model.Deref(h.ChangedBy),
			ChangedAt: h.ChangedAt,
		}
		if h.FromStatus != nil {
			ch.FromStatus = string(*h.FromStatus)
		}
		out.History[i] = ch
	}
	return out
}
