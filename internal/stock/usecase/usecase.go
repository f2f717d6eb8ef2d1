package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/metrics"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/stock"
	"github.com/fekuna/omnipos-rental-service/internal/stock/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/cache"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type stockUseCase struct {
	repo   stock.Repository
	locker stock.Locker
	txm    postgres.Transactor
	logger logger.ZapLogger
	now    func() time.Time
}

func NewStockUseCase(repo stock.Repository, locker stock.Locker, txm postgres.Transactor, log logger.ZapLogger) stock.UseCase {
	return &stockUseCase{
		repo:   repo,
		locker: locker,
		txm:    txm,
		logger: log,
		now:    time.Now,
	}
}

func (uc *stockUseCase) GetStock(ctx context.Context, officeID, productID string) (*model.StockItem, error) {
	item, err := uc.repo.GetByOfficeProduct(ctx, officeID, productID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &model.StockItem{
			OfficeID:  officeID,
			ProductID: productID,
			Quantity:  0,
		}, nil
	}
	return item, nil
}

func (uc *stockUseCase) ListStock(ctx context.Context, filters *dto.StockFilters) ([]model.StockItem, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *stockUseCase) AdjustStock(ctx context.Context, input *dto.AdjustStockInput) (*model.StockItem, error) {
	if input.OfficeID == "" || input.ProductID == "" {
		return nil, apperr.Invalid("office and product are required")
	}
	if input.QuantityChange == 0 {
		return nil, apperr.Invalid("quantity change must not be zero")
	}

	m := stock.NewMovement(input.OfficeID, input.ProductID, model.MovementAdjustment, input.QuantityChange,
		"manual", "", input.Reason, input.UserID)
	if err := uc.Apply(ctx, []model.StockMovement{m}); err != nil {
		return nil, err
	}

	return uc.GetStock(ctx, input.OfficeID, input.ProductID)
}

// Apply locks every touched stock key in a stable order, then applies the
// movements inside the ambient transaction (or a new one).
func (uc *stockUseCase) Apply(ctx context.Context, movements []model.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}

	release, err := uc.lockAll(ctx, movements)
	if err != nil {
		return err
	}
	defer release()

	now := uc.now()
	err = uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		for i := range movements {
			m := &movements[i]
			if m.ID == "" {
				m.ID = uuid.New().String()
			}
			if m.CreatedAt.IsZero() {
				m.CreatedAt = now
			}
			if err := uc.repo.ApplyMovement(ctx, m); err != nil {
				uc.logger.Warn("stock movement rejected",
					zap.String("office_id", m.OfficeID),
					zap.String("product_id", m.ProductID),
					zap.String("movement_type", string(m.MovementType)),
					zap.Int("quantity_change", m.QuantityChange),
					zap.Error(err),
				)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	postgres.AfterCommit(ctx, func() {
		for _, m := range movements {
			metrics.StockMovements.WithLabelValues(string(m.MovementType)).Inc()
		}
	})
	return nil
}

func (uc *stockUseCase) lockAll(ctx context.Context, movements []model.StockMovement) (func(), error) {
	if uc.locker == nil {
		return func() {}, nil
	}

	seen := map[string]struct{}{}
	keys := make([]string, 0, len(movements))
	for _, m := range movements {
		k := stock.LockKey(m.OfficeID, m.ProductID)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	// fixed order so two batches over the same keys cannot deadlock
	sort.Strings(keys)

	releases := make([]func(), 0, len(keys))
	releaseAll := func() {
		for i := len(releases) - 1; i >= 0; i-- {
			releases[i]()
		}
	}

	for _, k := range keys {
		release, err := uc.locker.Lock(ctx, k)
		if err != nil {
			releaseAll()
			if !errors.Is(err, cache.ErrLockNotAcquired) {
				uc.logger.Error("failed to acquire stock lock", zap.String("key", k), zap.Error(err))
			}
			return nil, apperr.Busy(err)
		}
		releases = append(releases, release)
	}
	return releaseAll, nil
}

func (uc *stockUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}
