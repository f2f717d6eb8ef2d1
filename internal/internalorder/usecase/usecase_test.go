package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/internalorder/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	orders map[string]model.InternalOrder
}

func (r *memRepo) Create(_ context.Context, o *model.InternalOrder) error {
	r.orders[o.ID] = *o
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string, _ bool) (*model.InternalOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (r *memRepo) FindAll(context.Context, *dto.InternalOrderFilters) ([]model.InternalOrder, int, error) {
	return nil, 0, nil
}

func (r *memRepo) UpdateStatus(_ context.Context, o *model.InternalOrder) error {
	r.orders[o.ID] = *o
	return nil
}

type officeMap map[string]*model.Office

func (m officeMap) FindByID(_ context.Context, id string) (*model.Office, error) { return m[id], nil }

type productMap map[string]*model.Product

func (m productMap) FindByID(_ context.Context, id string) (*model.Product, error) { return m[id], nil }

type recordingMover struct {
	applied []model.StockMovement
	err     error
}

func (m *recordingMover) Apply(_ context.Context, movements []model.StockMovement) error {
	if m.err != nil {
		return m.err
	}
	m.applied = append(m.applied, movements...)
	return nil
}

type inlineTx struct{}

func (inlineTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

func setup() (*internalOrderUseCase, *memRepo, *recordingMover) {
	repo := &memRepo{orders: map[string]model.InternalOrder{}}
	mover := &recordingMover{}
	offices := officeMap{
		"north": {BaseModel: model.BaseModel{ID: "north"}, IsActive: true},
		"south": {BaseModel: model.BaseModel{ID: "south"}, IsActive: true},
		"old":   {BaseModel: model.BaseModel{ID: "old"}, IsActive: false},
	}
	products := productMap{"tent": {BaseModel: model.BaseModel{ID: "tent"}, Kind: model.ProductKindRental}}

	uc := NewInternalOrderUseCase(repo, offices, products, mover, inlineTx{}, logger.NewNop()).(*internalOrderUseCase)
	return uc, repo, mover
}

func TestCreateInternalOrder_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input dto.CreateInternalOrderInput
		kind  apperr.Kind
	}{
		{"same office", dto.CreateInternalOrderInput{SourceOfficeID: "north", DestinationOfficeID: "north", Lines: []dto.LineInput{{ProductID: "tent", Quantity: 1}}}, apperr.KindInvalid},
		{"no lines", dto.CreateInternalOrderInput{SourceOfficeID: "north", DestinationOfficeID: "south"}, apperr.KindInvalid},
		{"inactive office", dto.CreateInternalOrderInput{SourceOfficeID: "north", DestinationOfficeID: "old", Lines: []dto.LineInput{{ProductID: "tent", Quantity: 1}}}, apperr.KindNotFound},
		{"zero quantity", dto.CreateInternalOrderInput{SourceOfficeID: "north", DestinationOfficeID: "south", Lines: []dto.LineInput{{ProductID: "tent", Quantity: 0}}}, apperr.KindInvalid},
		{"unknown product", dto.CreateInternalOrderInput{SourceOfficeID: "north", DestinationOfficeID: "south", Lines: []dto.LineInput{{ProductID: "kayak", Quantity: 1}}}, apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _, _ := setup()
			_, err := uc.CreateInternalOrder(context.Background(), &tt.input)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}
}

func TestCompleteInternalOrder_ConservesQuantity(t *testing.T) {
	uc, repo, mover := setup()
	ctx := context.Background()

	o, err := uc.CreateInternalOrder(ctx, &dto.CreateInternalOrderInput{
		SourceOfficeID: "north", DestinationOfficeID: "south",
		Lines: []dto.LineInput{{ProductID: "tent", Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Empty(t, mover.applied, "creating an order must not move stock")

	done, err := uc.CompleteInternalOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InternalOrderCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	require.Len(t, mover.applied, 2)
	net := 0
	for _, m := range mover.applied {
		net += m.QuantityChange
		assert.Equal(t, o.ID, *m.ReferenceID)
	}
	assert.Zero(t, net)
	assert.Equal(t, model.MovementTransferOut, mover.applied[0].MovementType)
	assert.Equal(t, "north", mover.applied[0].OfficeID)
	assert.Equal(t, model.MovementTransferIn, mover.applied[1].MovementType)
	assert.Equal(t, "south", mover.applied[1].OfficeID)

	_, err = uc.CompleteInternalOrder(ctx, o.ID)
	assert.Equal(t, apperr.KindIllegalTransition, apperr.KindOf(err))
	assert.Equal(t, model.InternalOrderCompleted, repo.orders[o.ID].Status)
}

func TestCompleteInternalOrder_ShortfallKeepsPending(t *testing.T) {
	uc, repo, mover := setup()
	ctx := context.Background()

	o, err := uc.CreateInternalOrder(ctx, &dto.CreateInternalOrderInput{
		SourceOfficeID: "north", DestinationOfficeID: "south",
		Lines: []dto.LineInput{{ProductID: "tent", Quantity: 3}},
	})
	require.NoError(t, err)

	mover.err = apperr.InsufficientStock("north", "tent")
	_, err = uc.CompleteInternalOrder(ctx, o.ID)
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))
	assert.Equal(t, model.InternalOrderPending, repo.orders[o.ID].Status)
}

func TestCancelInternalOrder(t *testing.T) {
	uc, _, mover := setup()
	ctx := context.Background()

	o, err := uc.CreateInternalOrder(ctx, &dto.CreateInternalOrderInput{
		SourceOfficeID: "north", DestinationOfficeID: "south",
		Lines: []dto.LineInput{{ProductID: "tent", Quantity: 1}},
	})
	require.NoError(t, err)

	canceled, err := uc.CancelInternalOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InternalOrderCanceled, canceled.Status)
	assert.Empty(t, mover.applied)

	_, err = uc.CompleteInternalOrder(ctx, o.ID)
	assert.Equal(t, apperr.KindIllegalTransition, apperr.KindOf(err))

	_, err = uc.CancelInternalOrder(ctx, "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
