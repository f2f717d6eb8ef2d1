package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/client/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, c *model.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id string) (*model.Client, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Client)
	return c, args.Error(1)
}

func (m *mockRepo) FindAll(ctx context.Context, f *dto.ClientFilters) ([]model.Client, int, error) {
	args := m.Called(ctx, f)
	c, _ := args.Get(0).([]model.Client)
	return c, args.Int(1), args.Error(2)
}

func (m *mockRepo) Update(ctx context.Context, c *model.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockRepo) IsDocumentUnique(ctx context.Context, doc, excludeID string) (bool, error) {
	args := m.Called(ctx, doc, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepo) HasOpenContracts(ctx context.Context, clientID string) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func TestCreateClient(t *testing.T) {
	repo := &mockRepo{}
	uc := NewClientUseCase(repo, logger.NewNop())
	ctx := context.Background()

	repo.On("IsDocumentUnique", ctx, "30111222", "").Return(true, nil)
	repo.On("Create", ctx, mock.MatchedBy(func(c *model.Client) bool {
		return c.FullName == "Ana Pérez" && c.IsActive && c.Email == nil && c.Phone != nil
	})).Return(nil)

	c, err := uc.CreateClient(ctx, &dto.CreateClientInput{FullName: " Ana Pérez ", DocumentNumber: "30111222", Phone: "555-0101"})
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	repo.AssertExpectations(t)
}

func TestCreateClient_DuplicateDocument(t *testing.T) {
	repo := &mockRepo{}
	uc := NewClientUseCase(repo, logger.NewNop())

	repo.On("IsDocumentUnique", mock.Anything, "30111222", "").Return(false, nil)

	_, err := uc.CreateClient(context.Background(), &dto.CreateClientInput{FullName: "Ana", DocumentNumber: "30111222"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateClient_RequiresName(t *testing.T) {
	uc := NewClientUseCase(&mockRepo{}, logger.NewNop())

	_, err := uc.CreateClient(context.Background(), &dto.CreateClientInput{DocumentNumber: "1"})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestDeleteClient_RefusesOpenContracts(t *testing.T) {
	repo := &mockRepo{}
	uc := NewClientUseCase(repo, logger.NewNop())

	repo.On("FindByID", mock.Anything, "c-1").Return(&model.Client{BaseModel: model.BaseModel{ID: "c-1"}, IsActive: true}, nil)
	repo.On("HasOpenContracts", mock.Anything, "c-1").Return(true, nil)

	err := uc.DeleteClient(context.Background(), "c-1")
	assert.Equal(t, apperr.KindFailedPrecondition, apperr.KindOf(err))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteClient_Deactivates(t *testing.T) {
	repo := &mockRepo{}
	uc := NewClientUseCase(repo, logger.NewNop())

	repo.On("FindByID", mock.Anything, "c-1").Return(&model.Client{BaseModel: model.BaseModel{ID: "c-1"}, IsActive: true}, nil)
	repo.On("HasOpenContracts", mock.Anything, "c-1").Return(false, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *model.Client) bool { return !c.IsActive })).Return(nil)

	require.NoError(t, uc.DeleteClient(context.Background(), "c-1"))
	repo.AssertExpectations(t)
}

func TestGetClient_NotFound(t *testing.T) {
	repo := &mockRepo{}
	uc := NewClientUseCase(repo, logger.NewNop())

	repo.On("FindByID", mock.Anything, "nope").Return(nil, nil)

	_, err := uc.GetClient(context.Background(), "nope")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
