package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/client"
	"github.com/fekuna/omnipos-rental-service/internal/client/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type clientUseCase struct {
	repo   client.Repository
	logger logger.ZapLogger
}

func NewClientUseCase(repo client.Repository, log logger.ZapLogger) client.UseCase {
	return &clientUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *clientUseCase) CreateClient(ctx context.Context, input *dto.CreateClientInput) (*model.Client, error) {
	name := strings.TrimSpace(input.FullName)
	doc := strings.TrimSpace(input.DocumentNumber)
	if name == "" || doc == "" {
		return nil, apperr.Invalid("full name and document number are required")
	}

	unique, err := uc.repo.IsDocumentUnique(ctx, doc, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, apperr.Conflict("Client", "document "+doc)
	}

	now := time.Now()
	c := &model.Client{
		BaseModel:      model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		FullName:       name,
		DocumentNumber: doc,
		Email:          model.NullString(input.Email),
		Phone:          model.NullString(input.Phone),
		Address:        model.NullString(input.Address),
		IsActive:       true,
	}

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.logger.Info("client created", zap.String("client_id", c.ID))
	return c, nil
}

func (uc *clientUseCase) GetClient(ctx context.Context, id string) (*model.Client, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("Client")
	}
	return c, nil
}

func (uc *clientUseCase) ListClients(ctx context.Context, filters *dto.ClientFilters) ([]model.Client, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *clientUseCase) UpdateClient(ctx context.Context, input *dto.UpdateClientInput) (*model.Client, error) {
	c, err := uc.GetClient(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	doc := strings.TrimSpace(input.DocumentNumber)
	if strings.TrimSpace(input.FullName) == "" || doc == "" {
		return nil, apperr.Invalid("full name and document number are required")
	}
	if doc != c.DocumentNumber {
		unique, err := uc.repo.IsDocumentUnique(ctx, doc, c.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, apperr.Conflict("Client", "document "+doc)
		}
	}

	c.FullName = strings.TrimSpace(input.FullName)
	c.DocumentNumber = doc
	c.Email = model.NullString(input.Email)
	c.Phone = model.NullString(input.Phone)
	c.Address = model.NullString(input.Address)
	c.IsActive = input.IsActive
	c.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteClient deactivates the client. Clients with open contracts stay.
func (uc *clientUseCase) DeleteClient(ctx context.Context, id string) error {
	c, err := uc.GetClient(ctx, id)
	if err != nil {
		return err
	}
	if !c.IsActive {
		return nil
	}

	open, err := uc.repo.HasOpenContracts(ctx, id)
	if err != nil {
		return err
	}
	if open {
		return apperr.FailedPrecondition("client %s has open contracts", id)
	}

	c.IsActive = false
	c.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, c)
}
