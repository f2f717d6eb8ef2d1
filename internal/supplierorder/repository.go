package supplierorder

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/supplierorder/dto"
)

type Repository interface {
	Create(ctx context.Context, order *model.SupplierOrder) error
	FindByID(ctx context.Context, id string, forUpdate bool) (*model.SupplierOrder, error)
	FindAll(ctx context.Context, filters *dto.SupplierOrderFilters) ([]model.SupplierOrder, int, error)
	UpdateStatus(ctx context.Context, order *model.SupplierOrder) error
}
