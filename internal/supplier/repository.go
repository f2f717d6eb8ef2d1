package supplier

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/supplier/dto"
)

type Repository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	FindByID(ctx context.Context, id string) (*model.Supplier, error)
	FindAll(ctx context.Context, filters *dto.SupplierFilters) ([]model.Supplier, int, error)
	Update(ctx context.Context, supplier *model.Supplier) error
	IsTaxIDUnique(ctx context.Context, taxID, excludeID string) (bool, error)
}
