package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/internalorder"
	"github.com/fekuna/omnipos-rental-service/internal/internalorder/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/stock"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const referenceType = "internal_order"

type internalOrderUseCase struct {
	repo     internalorder.Repository
	offices  internalorder.OfficeReader
	products internalorder.ProductReader
	stock    stock.Mover
	txm      postgres.Transactor
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewInternalOrderUseCase(
	repo internalorder.Repository,
	offices internalorder.OfficeReader,
	products internalorder.ProductReader,
	mover stock.Mover,
	txm postgres.Transactor,
	log logger.ZapLogger,
) internalorder.UseCase {
	return &internalOrderUseCase{
		repo:     repo,
		offices:  offices,
		products: products,
		stock:    mover,
		txm:      txm,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *internalOrderUseCase) CreateInternalOrder(ctx context.Context, input *dto.CreateInternalOrderInput) (*model.InternalOrder, error) {
	if input.SourceOfficeID == input.DestinationOfficeID {
		return nil, apperr.Invalid("source and destination office must differ")
	}
	if len(input.Lines) == 0 {
		return nil, apperr.Invalid("an internal order needs at least one line")
	}
	for _, officeID := range []string{input.SourceOfficeID, input.DestinationOfficeID} {
		o, err := uc.offices.FindByID(ctx, officeID)
		if err != nil {
			return nil, err
		}
		if o == nil || !o.IsActive {
			return nil, apperr.NotFound("Office")
		}
	}

	now := uc.now()
	order := &model.InternalOrder{
		BaseModel:           model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SourceOfficeID:      input.SourceOfficeID,
		DestinationOfficeID: input.DestinationOfficeID,
		Status:              model.InternalOrderPending,
		Notes:               input.Notes,
		CreatedBy:           model.NullString(input.UserID),
	}

	for _, l := range input.Lines {
		if l.Quantity <= 0 {
			return nil, apperr.Invalid("line quantity must be positive")
		}
		p, err := uc.products.FindByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperr.NotFound("Product")
		}
		order.Lines = append(order.Lines, model.InternalOrderLine{
			ID:              uuid.New().String(),
			InternalOrderID: order.ID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
		})
	}

	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		return uc.repo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("internal order created",
		zap.String("internal_order_id", order.ID),
		zap.String("source_office_id", order.SourceOfficeID),
		zap.String("destination_office_id", order.DestinationOfficeID))
	return order, nil
}

func (uc *internalOrderUseCase) GetInternalOrder(ctx context.Context, id string) (*model.InternalOrder, error) {
	o, err := uc.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("InternalOrder")
	}
	return o, nil
}

func (uc *internalOrderUseCase) ListInternalOrders(ctx context.Context, filters *dto.InternalOrderFilters) ([]model.InternalOrder, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

// CompleteInternalOrder moves every line out of the source office and into
// the destination office in one transaction.
func (uc *internalOrderUseCase) CompleteInternalOrder(ctx context.Context, id string) (*model.InternalOrder, error) {
	var order *model.InternalOrder
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.lockPending(ctx, id, model.InternalOrderCompleted)
		if err != nil {
			return err
		}

		userID := auth.GetUserID(ctx)
		movements := make([]model.StockMovement, 0, 2*len(o.Lines))
		for _, l := range o.Lines {
			movements = append(movements,
				stock.NewMovement(o.SourceOfficeID, l.ProductID, model.MovementTransferOut, -l.Quantity,
					referenceType, o.ID, "", userID),
				stock.NewMovement(o.DestinationOfficeID, l.ProductID, model.MovementTransferIn, l.Quantity,
					referenceType, o.ID, "", userID),
			)
		}
		if err := uc.stock.Apply(ctx, movements); err != nil {
			return err
		}

		now := uc.now()
		o.Status = model.InternalOrderCompleted
		o.CompletedAt = &now
		o.UpdatedAt = now
		if err := uc.repo.UpdateStatus(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		uc.logger.Error("failed to complete internal order", zap.String("internal_order_id", id), zap.Error(err))
		return nil, err
	}
	return order, nil
}

func (uc *internalOrderUseCase) CancelInternalOrder(ctx context.Context, id string) (*model.InternalOrder, error) {
	var order *model.InternalOrder
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.lockPending(ctx, id, model.InternalOrderCanceled)
		if err != nil {
			return err
		}
		o.Status = model.InternalOrderCanceled
		o.UpdatedAt = uc.now()
		if err := uc.repo.UpdateStatus(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (uc *internalOrderUseCase) lockPending(ctx context.Context, id string, to model.InternalOrderStatus) (*model.InternalOrder, error) {
	o, err := uc.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("InternalOrder")
	}
	if o.Status != model.InternalOrderPending {
		return nil, apperr.IllegalTransition("InternalOrder", string(o.Status), string(to))
	}
	return o, nil
}
