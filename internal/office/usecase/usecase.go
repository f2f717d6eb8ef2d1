package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/office"
	"github.com/fekuna/omnipos-rental-service/internal/office/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type officeUseCase struct {
	repo   office.Repository
	logger logger.ZapLogger
}

func NewOfficeUseCase(repo office.Repository, log logger.ZapLogger) office.UseCase {
	return &officeUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *officeUseCase) CreateOffice(ctx context.Context, input *dto.CreateOfficeInput) (*model.Office, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Invalid("office name is required")
	}

	now := time.Now()
	o := &model.Office{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      name,
		Address:   strings.TrimSpace(input.Address),
		Phone:     model.NullString(input.Phone),
		IsActive:  true,
	}
	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.logger.Info("office created", zap.String("office_id", o.ID), zap.String("name", o.Name))
	return o, nil
}

func (uc *officeUseCase) GetOffice(ctx context.Context, id string) (*model.Office, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("Office")
	}
	return o, nil
}

func (uc *officeUseCase) ListOffices(ctx context.Context, filters *dto.OfficeFilters) ([]model.Office, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *officeUseCase) UpdateOffice(ctx context.Context, input *dto.UpdateOfficeInput) (*model.Office, error) {
	o, err := uc.GetOffice(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperr.Invalid("office name is required")
	}
	o.Name = name
	o.Address = strings.TrimSpace(input.Address)
	o.Phone = model.NullString(input.Phone)
	o.IsActive = input.IsActive
	o.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}
