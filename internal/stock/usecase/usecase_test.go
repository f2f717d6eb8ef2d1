package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/metrics"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/stock"
	"github.com/fekuna/omnipos-rental-service/internal/stock/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/cache"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo keeps stock in a map and honors the non-negative guard.
type memRepo struct {
	mu        sync.Mutex
	qty       map[string]int
	movements []model.StockMovement
}

func newMemRepo() *memRepo {
	return &memRepo{qty: map[string]int{}}
}

func key(officeID, productID string) string { return officeID + "/" + productID }

func (r *memRepo) GetByOfficeProduct(ctx context.Context, officeID, productID string) (*model.StockItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.qty[key(officeID, productID)]
	if !ok {
		return nil, nil
	}
	return &model.StockItem{OfficeID: officeID, ProductID: productID, Quantity: q}, nil
}

func (r *memRepo) FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockItem, int, error) {
	return nil, 0, nil
}

func (r *memRepo) ApplyMovement(ctx context.Context, m *model.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(m.OfficeID, m.ProductID)
	before := r.qty[k]
	if before+m.QuantityChange < 0 {
		return apperr.InsufficientStock(m.OfficeID, m.ProductID)
	}
	r.qty[k] = before + m.QuantityChange
	m.QuantityBefore = before
	m.QuantityAfter = r.qty[k]
	r.movements = append(r.movements, *m)
	return nil
}

func (r *memRepo) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return r.movements, len(r.movements), nil
}

// undoTx snapshots the repo and restores it when fn fails.
type undoTx struct{ repo *memRepo }

func (u undoTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	u.repo.mu.Lock()
	snapshot := map[string]int{}
	for k, v := range u.repo.qty {
		snapshot[k] = v
	}
	moves := len(u.repo.movements)
	u.repo.mu.Unlock()

	if err := fn(ctx); err != nil {
		u.repo.mu.Lock()
		u.repo.qty = snapshot
		u.repo.movements = u.repo.movements[:moves]
		u.repo.mu.Unlock()
		return err
	}
	return nil
}

type recordingLocker struct {
	locked   []string
	released []string
	fail     string
}

func (l *recordingLocker) Lock(ctx context.Context, k string) (func(), error) {
	if k == l.fail {
		return nil, cache.ErrLockNotAcquired
	}
	l.locked = append(l.locked, k)
	return func() { l.released = append(l.released, k) }, nil
}

func newUseCase(repo *memRepo, locker stock.Locker) stock.UseCase {
	return NewStockUseCase(repo, locker, undoTx{repo: repo}, logger.NewNop())
}

func TestApply_LocksInSortedOrderAndReleases(t *testing.T) {
	repo := newMemRepo()
	locker := &recordingLocker{}
	uc := newUseCase(repo, locker)

	err := uc.Apply(context.Background(), []model.StockMovement{
		stock.NewMovement("o-2", "p-1", model.MovementPurchase, 3, "", "", "", ""),
		stock.NewMovement("o-1", "p-1", model.MovementPurchase, 2, "", "", "", ""),
		stock.NewMovement("o-2", "p-1", model.MovementPurchase, 1, "", "", "", ""),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"lock:stock:o-1:p-1", "lock:stock:o-2:p-1"}, locker.locked)
	assert.ElementsMatch(t, locker.locked, locker.released)
	assert.Equal(t, 4, repo.qty[key("o-2", "p-1")])
	assert.Equal(t, 2, repo.qty[key("o-1", "p-1")])

	for _, m := range repo.movements {
		assert.NotEmpty(t, m.ID)
		assert.False(t, m.CreatedAt.IsZero())
	}
}

func TestApply_ShortfallRollsBackWholeBatch(t *testing.T) {
	repo := newMemRepo()
	repo.qty[key("o-1", "p-1")] = 5
	repo.qty[key("o-1", "p-2")] = 1
	uc := newUseCase(repo, &recordingLocker{})

	err := uc.Apply(context.Background(), []model.StockMovement{
		stock.NewMovement("o-1", "p-1", model.MovementRentalOut, -5, "contract", "c-1", "", ""),
		stock.NewMovement("o-1", "p-2", model.MovementRentalOut, -2, "contract", "c-1", "", ""),
	})
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))

	assert.Equal(t, 5, repo.qty[key("o-1", "p-1")])
	assert.Equal(t, 1, repo.qty[key("o-1", "p-2")])
	assert.Empty(t, repo.movements)
}

func TestApply_LockContentionIsBusy(t *testing.T) {
	repo := newMemRepo()
	locker := &recordingLocker{fail: "lock:stock:o-1:p-2"}
	uc := newUseCase(repo, locker)

	err := uc.Apply(context.Background(), []model.StockMovement{
		stock.NewMovement("o-1", "p-1", model.MovementPurchase, 1, "", "", "", ""),
		stock.NewMovement("o-1", "p-2", model.MovementPurchase, 1, "", "", "", ""),
	})
	assert.Equal(t, apperr.KindBusy, apperr.KindOf(err))
	assert.Equal(t, []string{"lock:stock:o-1:p-1"}, locker.released)
	assert.Empty(t, repo.movements)
}

func TestAdjustStock(t *testing.T) {
	repo := newMemRepo()
	uc := newUseCase(repo, nil)
	ctx := context.Background()

	item, err := uc.AdjustStock(ctx, &dto.AdjustStockInput{OfficeID: "o-1", ProductID: "p-1", QuantityChange: 10, Reason: "initial count", UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{OfficeID: "o-1", ProductID: "p-1", QuantityChange: -11})
	assert.Equal(t, apperr.KindInsufficientStock, apperr.KindOf(err))

	_, err = uc.AdjustStock(ctx, &dto.AdjustStockInput{OfficeID: "o-1", ProductID: "p-1"})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	assert.Equal(t, model.MovementAdjustment, m.MovementType)
	assert.Equal(t, "initial count", m.Notes)
	require.NotNil(t, m.CreatedBy)
	assert.Equal(t, "u-1", *m.CreatedBy)
}

func TestGetStock_MissingIsZero(t *testing.T) {
	uc := newUseCase(newMemRepo(), nil)

	item, err := uc.GetStock(context.Background(), "o-9", "p-9")
	require.NoError(t, err)
	assert.Equal(t, 0, item.Quantity)
	assert.Equal(t, "o-9", item.OfficeID)
}

func TestApply_LockerError(t *testing.T) {
	repo := newMemRepo()
	uc := newUseCase(repo, lockerFunc(func(ctx context.Context, k string) (func(), error) {
		return nil, errors.New("redis down")
	}))

	err := uc.Apply(context.Background(), []model.StockMovement{
		stock.NewMovement("o-1", "p-1", model.MovementPurchase, 1, "", "", "", ""),
	})
	assert.Equal(t, apperr.KindBusy, apperr.KindOf(err))
}

type lockerFunc func(ctx context.Context, key string) (func(), error)

func (f lockerFunc) Lock(ctx context.Context, key string) (func(), error) { return f(ctx, key) }

func TestApply_CountsMovementsOnlyAfterCommit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	txm := postgres.NewTxManager(sqlx.NewDb(db, "sqlmock"))

	repo := newMemRepo()
	repo.qty[key("o-1", "p-1")] = 5
	uc := NewStockUseCase(repo, &recordingLocker{}, txm, logger.NewNop())
	counter := metrics.StockMovements.WithLabelValues(string(model.MovementRentalOut))
	before := testutil.ToFloat64(counter)

	mock.ExpectBegin()
	mock.ExpectRollback()
	err = txm.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := uc.Apply(ctx, []model.StockMovement{
			stock.NewMovement("o-1", "p-1", model.MovementRentalOut, -2, "contract", "c-1", "", ""),
		}); err != nil {
			return err
		}
		return errors.New("contract update failed")
	})
	require.Error(t, err)
	assert.Equal(t, before, testutil.ToFloat64(counter))

	mock.ExpectBegin()
	mock.ExpectCommit()
	err = txm.WithinTx(context.Background(), func(ctx context.Context) error {
		return uc.Apply(ctx, []model.StockMovement{
			stock.NewMovement("o-1", "p-1", model.MovementRentalOut, -2, "contract", "c-1", "", ""),
		})
	})
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.NoError(t, mock.ExpectationsWereMet())
}
