package sale

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/sale/dto"
)

type Repository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id string, forUpdate bool) (*model.Sale, error)
	FindAll(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error)
	UpdateStatus(ctx context.Context, sale *model.Sale) error
}
