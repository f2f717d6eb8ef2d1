package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/supplier"
	"github.com/fekuna/omnipos-rental-service/internal/supplier/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type supplierUseCase struct {
	repo   supplier.Repository
	logger logger.ZapLogger
}

func NewSupplierUseCase(repo supplier.Repository, log logger.ZapLogger) supplier.UseCase {
	return &supplierUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *supplierUseCase) CreateSupplier(ctx context.Context, input *dto.CreateSupplierInput) (*model.Supplier, error) {
	name, taxID := strings.TrimSpace(input.Name), strings.TrimSpace(input.TaxID)
	if name == "" || taxID == "" {
		return nil, apperr.Invalid("supplier name and tax id are required")
	}
	if err := uc.ensureUniqueTaxID(ctx, taxID, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	s := &model.Supplier{
		BaseModel:   model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:        name,
		TaxID:       taxID,
		ContactName: model.NullString(input.ContactName),
		Email:       model.NullString(input.Email),
		Phone:       model.NullString(input.Phone),
		IsActive:    true,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		uc.logger.Error("failed to create supplier", zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (uc *supplierUseCase) GetSupplier(ctx context.Context, id string) (*model.Supplier, error) {
	s, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("Supplier")
	}
	return s, nil
}

func (uc *supplierUseCase) ListSuppliers(ctx context.Context, filters *dto.SupplierFilters) ([]model.Supplier, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *supplierUseCase) UpdateSupplier(ctx context.Context, input *dto.UpdateSupplierInput) (*model.Supplier, error) {
	s, err := uc.GetSupplier(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	name, taxID := strings.TrimSpace(input.Name), strings.TrimSpace(input.TaxID)
	if name == "" || taxID == "" {
		return nil, apperr.Invalid("supplier name and tax id are required")
	}
	if taxID != s.TaxID {
		if err := uc.ensureUniqueTaxID(ctx, taxID, s.ID); err != nil {
			return nil, err
		}
	}

	s.Name = name
	s.TaxID = taxID
	s.ContactName = model.NullString(input.ContactName)
	s.Email = model.NullString(input.Email)
	s.Phone = model.NullString(input.Phone)
	s.IsActive = input.IsActive
	s.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *supplierUseCase) ensureUniqueTaxID(ctx context.Context, taxID, excludeID string) error {
	unique, err := uc.repo.IsTaxIDUnique(ctx, taxID, excludeID)
	if err != nil {
		return err
	}
	if !unique {
		return apperr.Conflict("Supplier", "tax id "+taxID)
	}
	return nil
}
