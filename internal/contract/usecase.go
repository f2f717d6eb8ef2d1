package contract

import (
	"context"
	"io"

	"github.com/fekuna/omnipos-rental-service/internal/contract/dto"
	"github.com/fekuna/omnipos-rental-service/internal/document"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	CreateContract(ctx context.Context, input *dto.CreateContractInput) (*model.Contract, error)
	GetContract(ctx context.Context, id string) (*model.Contract, error)
	ListContracts(ctx context.Context, filters *dto.ContractFilters) ([]model.Contract, int, error)
	UpdateContractItems(ctx context.Context, input *dto.UpdateContractItemsInput) (*model.Contract, error)

	RegisterPayment(ctx context.Context, id string, amount decimal.Decimal, notes string) (*model.Contract, error)
	ActivateContract(ctx context.Context, id, notes string) (*model.Contract, error)
	FinishContract(ctx context.Context, id, notes string) (*model.Contract, error)
	ReturnContract(ctx context.Context, input *dto.ReturnContractInput) (*model.Contract, error)
	CancelContract(ctx context.Context, id, notes string) (*model.Contract, error)

	// ExpireOverdue moves overdue active contracts to expired and returns how
	// many moved.
	ExpireOverdue(ctx context.Context) (int, error)
	RenderContract(ctx context.Context, id string, w io.Writer) error
}

type ClientReader interface {
	FindByID(ctx context.Context, id string) (*model.Client, error)
}

type OfficeReader interface {
	FindByID(ctx context.Context, id string) (*model.Office, error)
}

type ProductReader interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

type Renderer interface {
	Render(w io.Writer, view document.ContractView) error
}
