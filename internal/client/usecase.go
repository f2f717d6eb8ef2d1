package client

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/client/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
)

type UseCase interface {
	CreateClient(ctx context.Context, input *dto.CreateClientInput) (*model.Client, error)
	GetClient(ctx context.Context, id string) (*model.Client, error)
	ListClients(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error)
	UpdateClient(ctx context.Context, input *dto.UpdateClientInput) (*model.Client, error)
	DeleteClient(ctx context.Context, id string) error
}
