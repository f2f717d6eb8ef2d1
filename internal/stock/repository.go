package stock

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/stock/dto"
)

type Repository interface {
	// Stock items
	GetByOfficeProduct(ctx context.Context, officeID, productID string) (*model.StockItem, error)
	FindAll(ctx context.Context, filters *dto.StockFilters) ([]model.StockItem, int, error)

	// ApplyMovement changes the stock item by m.QuantityChange, refusing to
	// go below zero, fills QuantityBefore/After and logs the movement.
	ApplyMovement(ctx context.Context, m *model.StockMovement) error

	// Movements / Audit
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error)
}
