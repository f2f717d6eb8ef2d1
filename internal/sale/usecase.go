package sale

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/sale/dto"
)

type UseCase interface {
	CreateSale(ctx context.Context, input *dto.CreateSaleInput) (*model.Sale, error)
	GetSale(ctx context.Context, id string) (*model.Sale, error)
	ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
	CancelSale(ctx context.Context, id, reason string) (*model.Sale, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

type ClientReader interface {
	FindByID(ctx context.Context, id string) (*model.Client, error)
}

type OfficeReader interface {
	FindByID(ctx context.Context, id string) (*model.Office, error)
}
