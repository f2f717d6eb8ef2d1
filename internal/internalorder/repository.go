package internalorder

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/internalorder/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
)

type Repository interface {
	// Create inserts the order with its lines.
	Create(ctx context.Context, order *model.InternalOrder) error
	// FindByID loads the order and its lines. forUpdate row-locks the order
	// and must run inside a transaction.
	FindByID(ctx context.Context, id string, forUpdate bool) (*model.InternalOrder, error)
	FindAll(ctx context.Context, filters *dto.InternalOrderFilters) ([]model.InternalOrder, int, error)
	UpdateStatus(ctx context.Context, order *model.InternalOrder) error
}
