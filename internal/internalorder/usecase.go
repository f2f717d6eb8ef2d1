package internalorder

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/internalorder/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
)

type UseCase interface {
	CreateInternalOrder(ctx context.Context, input *dto.CreateInternalOrderInput) (*model.InternalOrder, error)
	GetInternalOrder(ctx context.Context, id string) (*model.InternalOrder, error)
	ListInternalOrders(ctx context.Context, filters *dto.InternalOrderFilters) ([]model.InternalOrder, int, error)
	CompleteInternalOrder(ctx context.Context, id string) (*model.InternalOrder, error)
	CancelInternalOrder(ctx context.Context, id string) (*model.InternalOrder, error)
}

type OfficeReader interface {
	FindByID(ctx context.Context, id string) (*model.Office, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}
