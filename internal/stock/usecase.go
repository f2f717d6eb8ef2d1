package stock

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/stock/dto"
)

// Mover applies a batch of stock movements atomically. Every module that
// touches stock goes through it.
type Mover interface {
	Apply(ctx context.Context, movements []model.StockMovement) error
}

// Locker serializes writers of the same stock key across instances.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}

type UseCase interface {
	Mover
	GetStock(ctx context.Context, officeID, productID string) (*model.StockItem, error)
	ListStock(ctx context.Context, filters *dto.StockFilters) ([]model.StockItem, int, error)
	AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockItem, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
