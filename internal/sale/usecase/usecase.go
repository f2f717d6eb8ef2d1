package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/sale"
	"github.com/fekuna/omnipos-rental-service/internal/sale/dto"
	"github.com/fekuna/omnipos-rental-service/internal/stock"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const referenceType = "sale"

type saleUseCase struct {
	repo     sale.Repository
	products sale.ProductReader
	clients  sale.ClientReader
	offices  sale.OfficeReader
	stock    stock.Mover
	txm      postgres.Transactor
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewSaleUseCase(
	repo sale.Repository,
	products sale.ProductReader,
	clients sale.ClientReader,
	offices sale.OfficeReader,
	mover stock.Mover,
	txm postgres.Transactor,
	log logger.ZapLogger,
) sale.UseCase {
	return &saleUseCase{
		repo:     repo,
		products: products,
		clients:  clients,
		offices:  offices,
		stock:    mover,
		txm:      txm,
		logger:   log,
		now:      time.Now,
	}
}

// CreateSale records the sale and takes the sold units out of the office in
// the same transaction.
func (uc *saleUseCase) CreateSale(ctx context.Context, input *dto.CreateSaleInput) (*model.Sale, error) {
	method := model.PaymentMethod(input.PaymentMethod)
	if !method.Valid() {
		return nil, apperr.Invalid("unknown payment method %q", input.PaymentMethod)
	}
	if len(input.Lines) == 0 {
		return nil, apperr.Invalid("a sale needs at least one line")
	}

	office, err := uc.offices.FindByID(ctx, input.OfficeID)
	if err != nil {
		return nil, err
	}
	if office == nil || !office.IsActive {
		return nil, apperr.NotFound("Office")
	}
	if input.ClientID != "" {
		c, err := uc.clients.FindByID(ctx, input.ClientID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, apperr.NotFound("Client")
		}
	}

	now := uc.now()
	s := &model.Sale{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		OfficeID:      input.OfficeID,
		ClientID:      model.NullString(input.ClientID),
		Status:        model.SaleCompleted,
		PaymentMethod: method,
		CreatedBy:     model.NullString(input.UserID),
	}

	for _, l := range input.Lines {
		if l.Quantity <= 0 {
			return nil, apperr.Invalid("line quantity must be positive")
		}
		if l.Discount.IsNegative() {
			return nil, apperr.Invalid("discount cannot be negative")
		}
		if !model.IsMoney(l.Discount) {
			return nil, apperr.Invalid("discount %s has more than two decimals", l.Discount)
		}

		p, err := uc.products.FindByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsActive {
			return nil, apperr.NotFound("Product")
		}
		if p.Kind != model.ProductKindSale {
			return nil, apperr.Invalid("product %s is not for sale", p.SKU)
		}

		unitPrice := p.SalePrice
		if l.UnitPrice != nil {
			if l.UnitPrice.IsNegative() {
				return nil, apperr.Invalid("unit price cannot be negative")
			}
			if !model.IsMoney(*l.UnitPrice) {
				return nil, apperr.Invalid("unit price %s has more than two decimals", *l.UnitPrice)
			}
			unitPrice = *l.UnitPrice
		}

		s.Lines = append(s.Lines, model.SaleLine{
			ID:        uuid.New().String(),
			SaleID:    s.ID,
			ProductID: p.ID,
			Quantity:  l.Quantity,
			UnitPrice: unitPrice,
			Discount:  l.Discount,
		})
	}

	s.Recalculate()
	for _, l := range s.Lines {
		if l.Subtotal.IsNegative() {
			return nil, apperr.Invalid("discount exceeds line amount for product %s", l.ProductID)
		}
	}

	err = uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, s); err != nil {
			return err
		}
		movements := make([]model.StockMovement, len(s.Lines))
		for i, l := range s.Lines {
			movements[i] = stock.NewMovement(s.OfficeID, l.ProductID, model.MovementSale, -l.Quantity,
				referenceType, s.ID, "", input.UserID)
		}
		return uc.stock.Apply(ctx, movements)
	})
	if err != nil {
		uc.logger.Error("failed to create sale", zap.String("office_id", s.OfficeID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("sale created", zap.String("sale_id", s.ID), zap.String("total", s.Total.String()))
	return s, nil
}

func (uc *saleUseCase) GetSale(ctx context.Context, id string) (*model.Sale, error) {
	s, err := uc.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.NotFound("Sale")
	}
	return s, nil
}

func (uc *saleUseCase) ListSales(ctx context.Context, filters *dto.SaleFilters) ([]model.Sale, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

// CancelSale puts the sold units back with sale_cancel movements.
func (uc *saleUseCase) CancelSale(ctx context.Context, id, reason string) (*model.Sale, error) {
	var canceled *model.Sale
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		s, err := uc.repo.FindByID(ctx, id, true)
		if err != nil {
			return err
		}
		if s == nil {
			return apperr.NotFound("Sale")
		}
		if s.Status != model.SaleCompleted {
			return apperr.IllegalTransition("Sale", string(s.Status), string(model.SaleCanceled))
		}

		userID := auth.GetUserID(ctx)
		movements := make([]model.StockMovement, len(s.Lines))
		for i, l := range s.Lines {
			movements[i] = stock.NewMovement(s.OfficeID, l.ProductID, model.MovementSaleCancel, l.Quantity,
				referenceType, s.ID, reason, userID)
		}
		if err := uc.stock.Apply(ctx, movements); err != nil {
			return err
		}

		now := uc.now()
		s.Status = model.SaleCanceled
		s.CanceledAt = &now
		s.UpdatedAt = now
		if err := uc.repo.UpdateStatus(ctx, s); err != nil {
			return err
		}
		canceled = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return canceled, nil
}
