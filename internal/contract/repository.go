package contract

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/contract/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
)

type Repository interface {
	// Create inserts the contract header, items and item services.
	Create(ctx context.Context, contract *model.Contract) error
	// FindByID loads the contract with items, services and history.
	// forUpdate row-locks the header and must run inside a transaction.
	FindByID(ctx context.Context, id string, forUpdate bool) (*model.Contract, error)
	FindAll(ctx context.Context, filters *dto.ContractFilters) ([]model.Contract, int, error)
	// Update writes the header: status, dates, money fields and notes.
	Update(ctx context.Context, contract *model.Contract) error
	// ReplaceItems drops the stored items and services and inserts contract.Items.
	ReplaceItems(ctx context.Context, contract *model.Contract) error
	UpdateItemReturns(ctx context.Context, items []model.ContractItem) error
	AddStatusChange(ctx context.Context, change *model.ContractStatusChange) error
	// FindOverdue returns ids of active contracts whose end date is before now.
	FindOverdue(ctx context.Context, now time.Time) ([]string, error)
}
