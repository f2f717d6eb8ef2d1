package handler

import (
	"context"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/product"
	"github.com/fekuna/omnipos-rental-service/internal/product/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"go.uber.org/zap"
)

var _ rentalv1.ProductServiceServer = (*ProductHandler)(nil)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductHandler) CreateProduct(ctx context.Context, req *rentalv1.CreateProductRequest) (*rentalv1.Product, error) {
	input := &dto.CreateProductInput{
		SKU:         req.Sku,
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Kind:        req.Kind,
		SalePrice:   req.SalePrice,
		RentalPrice: req.RentalPrice,
		CostPrice:   req.CostPrice,
	}

	p, err := h.uc.CreateProduct(ctx, input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapProductToProto(p), nil
}

func (h *ProductHandler) GetProduct(ctx context.Context, req *rentalv1.GetProductRequest) (*rentalv1.Product, error) {
	p, err := h.uc.GetProduct(ctx, req.Id)
	if err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapProductToProto(p), nil
}

func (h *ProductHandler) ListProducts(ctx context.Context, req *rentalv1.ListProductsRequest) (*rentalv1.ListProductsResponse, error) {
	filters := &dto.ProductFilters{
		Kind:       req.Kind,
		ActiveOnly: req.ActiveOnly,
		Search:     req.Search,
		SortBy:     req.SortBy,
		SortOrder:  req.SortOrder,
		Page:       int(req.Page),
		PageSize:   int(req.PageSize),
	}

	products, count, err := h.uc.ListProducts(ctx, filters)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}

	protoProducts := make([]*rentalv1.Product, len(products))
	for i := range products {
		protoProducts[i] = mapProductToProto(&products[i])
	}

	return &rentalv1.ListProductsResponse{
		Products: protoProducts,
		Total:    int32(count),
	}, nil
}

func (h *ProductHandler) UpdateProduct(ctx context.Context, req *rentalv1.UpdateProductRequest) (*rentalv1.Product, error) {
	input := &dto.UpdateProductInput{
		ID:          req.Id,
		SKU:         req.Sku,
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		SalePrice:   req.SalePrice,
		RentalPrice: req.RentalPrice,
		CostPrice:   req.CostPrice,
		IsActive:    req.IsActive,
	}

	p, err := h.uc.UpdateProduct(ctx, input)
	if err != nil {
		h.logger.Error("failed to update product", zap.String("product_id", req.Id), zap.Error(err))
		return nil, apperr.ToStatus(ctx, err)
	}
	return mapProductToProto(p), nil
}

func (h *ProductHandler) DeleteProduct(ctx context.Context, req *rentalv1.DeleteProductRequest) (*rentalv1.Empty, error) {
	if err := h.uc.DeleteProduct(ctx, req.Id); err != nil {
		return nil, apperr.ToStatus(ctx, err)
	}
	return &rentalv1.Empty{}, nil
}

func mapProductToProto(p *model.Product) *rentalv1.Product {
	return &rentalv1.Product{
		Id:          p.ID,
		Sku:         p.SKU,
		Name:        p.Name,
		Description: model.Deref(p.Description),
		Brand:       model.Deref(p.Brand),
		Kind:        string(p.Kind),
		SalePrice:   p.SalePrice,
		RentalPrice: p.RentalPrice,
		CostPrice:   p.CostPrice,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
