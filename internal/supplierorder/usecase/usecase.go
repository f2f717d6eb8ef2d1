package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/notification"
	"github.com/fekuna/omnipos-rental-service/internal/stock"
	"github.com/fekuna/omnipos-rental-service/internal/supplierorder"
	"github.com/fekuna/omnipos-rental-service/internal/supplierorder/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const referenceType = "supplier_order"

type supplierOrderUseCase struct {
	repo      supplierorder.Repository
	suppliers supplierorder.SupplierReader
	offices   supplierorder.OfficeReader
	products  supplierorder.ProductReader
	stock     stock.Mover
	txm       postgres.Transactor
	notifier  notification.Sender
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewSupplierOrderUseCase(
	repo supplierorder.Repository,
	suppliers supplierorder.SupplierReader,
	offices supplierorder.OfficeReader,
	products supplierorder.ProductReader,
	mover stock.Mover,
	txm postgres.Transactor,
	notifier notification.Sender,
	log logger.ZapLogger,
) supplierorder.UseCase {
	return &supplierOrderUseCase{
		repo:      repo,
		suppliers: suppliers,
		offices:   offices,
		products:  products,
		stock:     mover,
		txm:       txm,
		notifier:  notifier,
		logger:    log,
		now:       time.Now,
	}
}

func (uc *supplierOrderUseCase) CreateSupplierOrder(ctx context.Context, input *dto.CreateSupplierOrderInput) (*model.SupplierOrder, error) {
	if len(input.Lines) == 0 {
		return nil, apperr.Invalid("a supplier order needs at least one line")
	}

	sup, err := uc.suppliers.FindByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if sup == nil || !sup.IsActive {
		return nil, apperr.NotFound("Supplier")
	}
	office, err := uc.offices.FindByID(ctx, input.OfficeID)
	if err != nil {
		return nil, err
	}
	if office == nil || !office.IsActive {
		return nil, apperr.NotFound("Office")
	}

	now := uc.now()
	order := &model.SupplierOrder{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		SupplierID: input.SupplierID,
		OfficeID:   input.OfficeID,
		Status:     model.SupplierOrderPending,
		Notes:      input.Notes,
		ExpectedAt: input.ExpectedAt,
		CreatedBy:  model.NullString(input.UserID),
	}

	for _, l := range input.Lines {
		if l.Quantity <= 0 {
			return nil, apperr.Invalid("line quantity must be positive")
		}
		if l.UnitCost.IsNegative() {
			return nil, apperr.Invalid("unit cost cannot be negative")
		}
		if !model.IsMoney(l.UnitCost) {
			return nil, apperr.Invalid("unit cost %s has more than two decimals", l.UnitCost)
		}
		p, err := uc.products.FindByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperr.NotFound("Product")
		}
		order.Lines = append(order.Lines, model.SupplierOrderLine{
			ID:              uuid.New().String(),
			SupplierOrderID: order.ID,
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			UnitCost:        l.UnitCost,
		})
	}
	order.Recalculate()

	err = uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		return uc.repo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	lines := make([]map[string]interface{}, len(order.Lines))
	for i, l := range order.Lines {
		lines[i] = map[string]interface{}{"product_id": l.ProductID, "quantity": l.Quantity}
	}
	uc.notify(ctx, notification.Event{
		Type:     notification.SupplierOrderCreated,
		EntityID: order.ID,
		Payload: map[string]interface{}{
			"supplier_id":   sup.ID,
			"supplier_name": sup.Name,
			"contact_email": model.Deref(sup.Email),
			"office_id":     order.OfficeID,
			"total":         order.Total.String(),
			"lines":         lines,
		},
	})
	return order, nil
}

func (uc *supplierOrderUseCase) GetSupplierOrder(ctx context.Context, id string) (*model.SupplierOrder, error) {
	o, err := uc.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("SupplierOrder")
	}
	return o, nil
}

func (uc *supplierOrderUseCase) ListSupplierOrders(ctx context.Context, filters *dto.SupplierOrderFilters) ([]model.SupplierOrder, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

// ReceiveSupplierOrder books every line into the receiving office as a
// purchase.
func (uc *supplierOrderUseCase) ReceiveSupplierOrder(ctx context.Context, id string) (*model.SupplierOrder, error) {
	var order *model.SupplierOrder
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.lockPending(ctx, id, model.SupplierOrderReceived)
		if err != nil {
			return err
		}

		userID := auth.GetUserID(ctx)
		movements := make([]model.StockMovement, len(o.Lines))
		for i, l := range o.Lines {
			movements[i] = stock.NewMovement(o.OfficeID, l.ProductID, model.MovementPurchase, l.Quantity,
				referenceType, o.ID, "", userID)
		}
		if err := uc.stock.Apply(ctx, movements); err != nil {
			return err
		}

		now := uc.now()
		o.Status = model.SupplierOrderReceived
		o.ReceivedAt = &now
		o.UpdatedAt = now
		if err := uc.repo.UpdateStatus(ctx, o); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("supplier order received",
		zap.String("supplier_order_id", order.ID),
		zap.String("office_id", order.OfficeID))
	return order, nil
}

func (uc *supplierOrderUseCase) CancelSupplierOrder(ctx context.Context, id string) (*model.SupplierOrder, error) {
	var order *model.SupplierOrder
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		o, err := uc.lockPending(ctx, id, model.SupplierOrderCanceled)
		if err != nil {
			return err
		}
		o.Status = model.SupplierOrderCanceled
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

func (uc *supplierOrderUseCase) lockPending(ctx context.Context, id string, to model.SupplierOrderStatus) (*model.SupplierOrder, error) {
	o, err := uc.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, apperr.NotFound("SupplierOrder")
	}
	if o.Status != model.SupplierOrderPending {
		return nil, apperr.IllegalTransition("SupplierOrder", string(o.Status), string(to))
	}
	return o, nil
}

func (uc *supplierOrderUseCase) notify(ctx context.Context, event notification.Event) {
	if err := uc.notifier.Send(ctx, event); err != nil {
		uc.logger.Warn("failed to send notification",
			zap.String("type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err))
	}
}
