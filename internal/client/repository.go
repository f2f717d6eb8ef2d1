package client

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/client/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id string) (*model.Client, error)
	FindAll(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error)
	Update(ctx context.Context, client *model.Client) error

	IsDocumentUnique(ctx context.Context, documentNumber, excludeID string) (bool, error)
	// HasOpenContracts reports contracts not yet returned or canceled.
	HasOpenContracts(ctx context.Context, clientID string) (bool, error)
}
