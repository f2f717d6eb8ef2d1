package handler

import (
	"context"
	"io"
	"testing"
	"time"

	rentalv1 "github.com/fekuna/omnipos-rental-service/api/rental/v1"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/contract/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) contract(args mock.Arguments) (*model.Contract, error) {
	c, _ := args.Get(0).(*model.Contract)
	return c, args.Error(1)
}

func (m *mockUseCase) CreateContract(ctx context.Context, input *dto.CreateContractInput) (*model.Contract, error) {
	return m.contract(m.Called(ctx, input))
}

func (m *mockUseCase) GetContract(ctx context.Context, id string) (*model.Contract, error) {
	return m.contract(m.Called(ctx, id))
}

func (m *mockUseCase) ListContracts(ctx context.Context, f *dto.ContractFilters) ([]model.Contract, int, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Contract)
	return items, args.Int(1), args.Error(2)
}

func (m *mockUseCase) UpdateContractItems(ctx context.Context, input *dto.UpdateContractItemsInput) (*model.Contract, error) {
	return m.contract(m.Called(ctx, input))
}

func (m *mockUseCase) RegisterPayment(ctx context.Context, id string, amount decimal.Decimal, notes string) (*model.Contract, error) {
	return m.contract(m.Called(ctx, id, amount, notes))
}

func (m *mockUseCase) ActivateContract(ctx context.Context, id, notes string) (*model.Contract, error) {
	return m.contract(m.Called(ctx, id, notes))
}

func (m *mockUseCase) FinishContract(ctx context.Context, id, notes string) (*model.Contract, error) {
	return m.contract(m.Called(ctx, id, notes))
}

func (m *mockUseCase) ReturnContract(ctx context.Context, input *dto.ReturnContractInput) (*model.Contract, error) {
	return m.contract(m.Called(ctx, input))
}

func (m *mockUseCase) CancelContract(ctx context.Context, id, notes string) (*model.Contract, error) {
	return m.contract(m.Called(ctx, id, notes))
}

func (m *mockUseCase) ExpireOverdue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockUseCase) RenderContract(ctx context.Context, id string, w io.Writer) error {
	return m.Called(ctx, id, w).Error(0)
}

func TestCreateContract_MapsRequest(t *testing.T) {
	uc := &mockUseCase{}
	h := NewContractHandler(uc, logger.NewNop())
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, "clerk-1")
	start := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	price := decimal.NewFromInt(9)

	uc.On("CreateContract", mock.Anything, &dto.CreateContractInput{
		ClientID:  "c-1",
		OfficeID:  "o-1",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Discount:  decimal.Decimal{},
		Items: []dto.ItemInput{{
			ProductID: "p-1",
			Quantity:  3,
			UnitPrice: &price,
			Services:  []dto.ServiceInput{{Name: "delivery", Price: decimal.NewFromInt(4)}},
		}},
		UserID: "clerk-1",
	}).Return(&model.Contract{
		BaseModel: model.BaseModel{ID: "k-1"},
		Status:    model.ContractBudgeted,
		Total:     decimal.NewFromInt(58),
		Items:     []model.ContractItem{{ID: "i-1", ProductID: "p-1", Quantity: 3, Days: 2}},
		History:   []model.ContractStatusChange{{ToStatus: model.ContractBudgeted, ChangedBy: model.NullString("clerk-1")}},
	}, nil)

	out, err := h.CreateContract(ctx, &rentalv1.CreateContractRequest{
		ClientId:  "c-1",
		OfficeId:  "o-1",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Items: []*rentalv1.ContractItemInput{
			{ProductId: "p-1", Quantity: 3, UnitPrice: &price, Services: []*rentalv1.ItemService{{Name: "delivery", Price: decimal.NewFromInt(4)}}},
			nil,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "k-1", out.Id)
	assert.Equal(t, "budgeted", out.Status)
	assert.True(t, decimal.NewFromInt(58).Equal(out.Balance))
	require.Len(t, out.Items, 1)
	assert.Equal(t, int32(2), out.Items[0].Days)
	require.Len(t, out.History, 1)
	assert.Empty(t, out.History[0].FromStatus)
	assert.Equal(t, "clerk-1", out.History[0].ChangedBy)
	uc.AssertExpectations(t)
}

func TestReturnContract_MapsItems(t *testing.T) {
	uc := &mockUseCase{}
	h := NewContractHandler(uc, logger.NewNop())

	finished := model.ContractFinished
	uc.On("ReturnContract", mock.Anything, &dto.ReturnContractInput{
		ID:    "k-1",
		Notes: "late",
		Items: map[string]int{"i-1": 1},
	}).Return(&model.Contract{
		BaseModel: model.BaseModel{ID: "k-1"},
		Status:    model.ContractReturnedFailed,
		History:   []model.ContractStatusChange{{FromStatus: &finished, ToStatus: model.ContractReturnedFailed}},
	}, nil)

	out, err := h.ReturnContract(context.Background(), &rentalv1.ReturnContractRequest{
		Id:    "k-1",
		Notes: "late",
		Items: []*rentalv1.ReturnItem{{ItemId: "i-1", ReturnedQuantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "returned_failed", out.Status)
	assert.Equal(t, "finished", out.History[0].FromStatus)
	uc.AssertExpectations(t)
}

func TestReturnContract_RejectsRepeatedItem(t *testing.T) {
	uc := &mockUseCase{}
	h := NewContractHandler(uc, logger.NewNop())

	_, err := h.ReturnContract(context.Background(), &rentalv1.ReturnContractRequest{
		Id: "k-1",
		Items: []*rentalv1.ReturnItem{
			{ItemId: "i-1", ReturnedQuantity: 2},
			{ItemId: "i-1", ReturnedQuantity: 0},
		},
	})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	uc.AssertNotCalled(t, "ReturnContract", mock.Anything, mock.Anything)
}

func TestErrorsMapToCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"not found", apperr.NotFound("Contract"), codes.NotFound},
		{"illegal transition", apperr.IllegalTransition("Contract", "budgeted", "active"), codes.FailedPrecondition},
		{"invalid payment", apperr.Invalid("payment amount must be positive"), codes.InvalidArgument},
		{"no stock", apperr.InsufficientStock("o-1", "p-1"), codes.FailedPrecondition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			h := NewContractHandler(uc, logger.NewNop())
			uc.On("ActivateContract", mock.Anything, "k-1", "").Return(nil, tt.err)

			_, err := h.ActivateContract(context.Background(), &rentalv1.ContractActionRequest{Id: "k-1"})
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}
