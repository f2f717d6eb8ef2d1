package supplierorder

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/supplierorder/dto"
)

type UseCase interface {
	CreateSupplierOrder(ctx context.Context, input *dto.CreateSupplierOrderInput) (*model.SupplierOrder, error)
	GetSupplierOrder(ctx context.Context, id string) (*model.SupplierOrder, error)
	ListSupplierOrders(ctx context.Context, filters *dto.SupplierOrderFilters) ([]model.SupplierOrder, int, error)
	ReceiveSupplierOrder(ctx context.Context, id string) (*model.SupplierOrder, error)
	CancelSupplierOrder(ctx context.Context, id string) (*model.SupplierOrder, error)
}

type SupplierReader interface {
	FindByID(ctx context.Context, id string) (*model.Supplier, error)
}

type OfficeReader interface {
	FindByID(ctx context.Context, id string) (*model.Office, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}
