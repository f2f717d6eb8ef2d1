package office

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/office/dto"
)

type UseCase interface {
	CreateOffice(ctx context.Context, input *dto.CreateOfficeInput) (*model.Office, error)
	GetOffice(ctx context.Context, id string) (*model.Office, error)
	ListOffices(ctx context.Context, filters *dto.OfficeFilters) ([]model.Office, int, error)
	UpdateOffice(ctx context.Context, input *dto.UpdateOfficeInput) (*model.Office, error)
}
