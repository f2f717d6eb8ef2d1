package office

import (
	"context"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/office/dto"
)

type Repository interface {
	Create(ctx context.Context, office *model.Office) error
	FindByID(ctx context.Context, id string) (*model.Office, error)
	FindAll(ctx context.Context, filters *dto.OfficeFilters) ([]model.Office, int, error)
	Update(ctx context.Context, office *model.Office) error
}
