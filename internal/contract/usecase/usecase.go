package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/auth"
	"github.com/fekuna/omnipos-rental-service/internal/contract"
	"github.com/fekuna/omnipos-rental-service/internal/contract/dto"
	"github.com/fekuna/omnipos-rental-service/internal/document"
	"github.com/fekuna/omnipos-rental-service/internal/metrics"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/notification"
	"github.com/fekuna/omnipos-rental-service/internal/stock"
	"github.com/fekuna/omnipos-rental-service/pkg/logger"
	"github.com/fekuna/omnipos-rental-service/pkg/middleware"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const referenceType = "contract"

type contractUseCase struct {
	repo     contract.Repository
	clients  contract.ClientReader
	offices  contract.OfficeReader
	products contract.ProductReader
	stock    stock.Mover
	txm      postgres.Transactor
	notifier notification.Sender
	renderer contract.Renderer
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewContractUseCase(
	repo contract.Repository,
	clients contract.ClientReader,
	offices contract.OfficeReader,
	products contract.ProductReader,
	mover stock.Mover,
	txm postgres.Transactor,
	notifier notification.Sender,
	renderer contract.Renderer,
	log logger.ZapLogger,
) contract.UseCase {
	return &contractUseCase{
		repo:     repo,
		clients:  clients,
		offices:  offices,
		products: products,
		stock:    mover,
		txm:      txm,
		notifier: notifier,
		renderer: renderer,
		logger:   log,
		now:      time.Now,
	}
}

func (uc *contractUseCase) CreateContract(ctx context.Context, input *dto.CreateContractInput) (*model.Contract, error) {
	client, err := uc.clients.FindByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || !client.IsActive {
		return nil, apperr.NotFound("Client")
	}
	office, err := uc.offices.FindByID(ctx, input.OfficeID)
	if err != nil {
		return nil, err
	}
	if office == nil || !office.IsActive {
		return nil, apperr.NotFound("Office")
	}
	if err := validatePeriod(input.StartDate, input.EndDate, input.Discount); err != nil {
		return nil, err
	}

	now := uc.now()
	c := &model.Contract{
		BaseModel:  model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Number:     contract.NewNumber(now),
		ClientID:   input.ClientID,
		OfficeID:   input.OfficeID,
		Status:     model.ContractBudgeted,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Discount:   input.Discount,
		AmountPaid: decimal.Zero,
		Notes:      input.Notes,
		CreatedBy:  model.NullString(input.UserID),
	}
	if c.Items, err = uc.buildItems(ctx, c.ID, input.Items); err != nil {
		return nil, err
	}
	contract.Recalculate(c)

	seed := model.ContractStatusChange{
		ID:         uuid.New().String(),
		ContractID: c.ID,
		ToStatus:   model.ContractBudgeted,
		ChangedBy:  model.NullString(input.UserID),
		ChangedAt:  now,
	}

	err = uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		if err := uc.repo.Create(ctx, c); err != nil {
			return err
		}
		return uc.repo.AddStatusChange(ctx, &seed)
	})
	if err != nil {
		return nil, err
	}
	c.History = []model.ContractStatusChange{seed}

	uc.logger.Info("contract created",
		zap.String("contract_id", c.ID),
		zap.String("number", c.Number),
		zap.String("office_id", c.OfficeID))
	return c, nil
}

func (uc *contractUseCase) GetContract(ctx context.Context, id string) (*model.Contract, error) {
	c, err := uc.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("Contract")
	}
	return c, nil
}

func (uc *contractUseCase) ListContracts(ctx context.Context, filters *dto.ContractFilters) ([]model.Contract, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

// UpdateContractItems edits a budget. Once money has been taken the contract
// is frozen.
func (uc *contractUseCase) UpdateContractItems(ctx context.Context, input *dto.UpdateContractItemsInput) (*model.Contract, error) {
	return uc.mutate(ctx, input.ID, func(ctx context.Context, c *model.Contract) error {
		if c.Status != model.ContractBudgeted {
			return apperr.FailedPrecondition("contract %s is %s, only budgeted contracts can be edited", c.Number, c.Status)
		}

		if input.StartDate != nil {
			c.StartDate = *input.StartDate
		}
		if input.EndDate != nil {
			c.EndDate = *input.EndDate
		}
		if input.Discount != nil {
			c.Discount = *input.Discount
		}
		if err := validatePeriod(c.StartDate, c.EndDate, c.Discount); err != nil {
			return err
		}

		if len(input.Items) > 0 {
			items, err := uc.buildItems(ctx, c.ID, input.Items)
			if err != nil {
				return err
			}
			c.Items = items
		}
		contract.Recalculate(c)
		c.UpdatedAt = uc.now()

		if err := uc.repo.ReplaceItems(ctx, c); err != nil {
			return err
		}
		return uc.repo.Update(ctx, c)
	})
}

// RegisterPayment adds to the amount paid. Reaching the total makes the
// contract paid, a partial first payment makes it deposited.
func (uc *contractUseCase) RegisterPayment(ctx context.Context, id string, amount decimal.Decimal, notes string) (*model.Contract, error) {
	if amount.IsNegative() {
		return nil, apperr.Invalid("payment amount must be positive")
	}
	if !model.IsMoney(amount) {
		return nil, apperr.Invalid("payment amount %s has more than two decimals", amount)
	}

	return uc.mutate(ctx, id, func(ctx context.Context, c *model.Contract) error {
		if c.Status != model.ContractBudgeted && c.Status != model.ContractDeposited {
			return apperr.FailedPrecondition("contract %s is %s and takes no payments", c.Number, c.Status)
		}

		balance := c.Balance()
		if amount.IsZero() && !balance.IsZero() {
			return apperr.Invalid("payment amount must be positive")
		}
		if amount.GreaterThan(balance) {
			return apperr.Invalid("payment %s exceeds the balance of %s", amount.StringFixed(2), balance.StringFixed(2))
		}

		c.AmountPaid = c.AmountPaid.Add(amount)
		switch {
		case c.AmountPaid.GreaterThanOrEqual(c.Total):
			return uc.transition(ctx, c, model.ContractPaid, notes)
		case c.Status == model.ContractBudgeted:
			return uc.transition(ctx, c, model.ContractDeposited, notes)
		default:
			c.UpdatedAt = uc.now()
			return uc.repo.Update(ctx, c)
		}
	})
}

// ActivateContract hands the goods to the client: every item leaves the
// office stock.
func (uc *contractUseCase) ActivateContract(ctx context.Context, id, notes string) (*model.Contract, error) {
	return uc.mutate(ctx, id, func(ctx context.Context, c *model.Contract) error {
		if !contract.CanTransition(c.Status, model.ContractActive) {
			return apperr.IllegalTransition("Contract", string(c.Status), string(model.ContractActive))
		}

		userID := auth.GetUserID(ctx)
		movements := make([]model.StockMovement, 0, len(c.Items))
		for _, it := range c.Items {
			movements = append(movements, stock.NewMovement(c.OfficeID, it.ProductID, model.MovementRentalOut,
				-it.Quantity, referenceType, c.ID, c.Number, userID))
		}
		if err := uc.stock.Apply(ctx, movements); err != nil {
			return err
		}
		return uc.transition(ctx, c, model.ContractActive, notes)
	})
}

func (uc *contractUseCase) FinishContract(ctx context.Context, id, notes string) (*model.Contract, error) {
	return uc.mutate(ctx, id, func(ctx context.Context, c *model.Contract) error {
		return uc.transition(ctx, c, model.ContractFinished, notes)
	})
}

// ReturnContract records what came back. Returned units go back into the
// office stock; anything short is recorded as missing and the contract ends
// as returned_failed.
func (uc *contractUseCase) ReturnContract(ctx context.Context, input *dto.ReturnContractInput) (*model.Contract, error) {
	return uc.mutate(ctx, input.ID, func(ctx context.Context, c *model.Contract) error {
		if c.Status != model.ContractFinished {
			return apperr.IllegalTransition("Contract", string(c.Status), string(model.ContractReturnedOK))
		}

		known := make(map[string]bool, len(c.Items))
		for _, it := range c.Items {
			known[it.ID] = true
		}
		for itemID := range input.Items {
			if !known[itemID] {
				return apperr.Invalid("item %s does not belong to contract %s", itemID, c.Number)
			}
		}

		userID := auth.GetUserID(ctx)
		missing := 0
		movements := make([]model.StockMovement, 0, len(c.Items))
		for i := range c.Items {
			it := &c.Items[i]
			returned, listed := input.Items[it.ID]
			if !listed {
				returned = it.Quantity
			}
			if returned < 0 || returned > it.Quantity {
				return apperr.Invalid("returned quantity for item %s must be between 0 and %d", it.ID, it.Quantity)
			}
			it.ReturnedQuantity = returned
			it.MissingQuantity = it.Quantity - returned
			missing += it.MissingQuantity

			if returned > 0 {
				movements = append(movements, stock.NewMovement(c.OfficeID, it.ProductID, model.MovementRentalReturn,
					returned, referenceType, c.ID, c.Number, userID))
			}
		}

		if err := uc.stock.Apply(ctx, movements); err != nil {
			return err
		}
		if err := uc.repo.UpdateItemReturns(ctx, c.Items); err != nil {
			return err
		}

		to := model.ContractReturnedOK
		if missing > 0 {
			to = model.ContractReturnedFailed
		}
		return uc.transition(ctx, c, to, input.Notes)
	})
}

func (uc *contractUseCase) CancelContract(ctx context.Context, id, notes string) (*model.Contract, error) {
	return uc.mutate(ctx, id, func(ctx context.Context, c *model.Contract) error {
		return uc.transition(ctx, c, model.ContractCanceled, notes)
	})
}

// ExpireOverdue moves every active contract past its end date to expired.
// One failing contract does not stop the rest.
func (uc *contractUseCase) ExpireOverdue(ctx context.Context) (int, error) {
	now := uc.now()
	ids, err := uc.repo.FindOverdue(ctx, now)
	if err != nil {
		return 0, err
	}

	ctx = context.WithValue(ctx, middleware.UserIDKey, auth.SystemUser)
	expired := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}

		moved := false
		_, err := uc.mutate(ctx, id, func(ctx context.Context, c *model.Contract) error {
			// Re-checked under the row lock; a user may have finished it meanwhile.
			if c.Status != model.ContractActive || !c.EndDate.Before(now) {
				return nil
			}
			moved = true
			return uc.transition(ctx, c, model.ContractExpired, "rental period ended")
		})
		if err != nil {
			uc.logger.Error("failed to expire contract", zap.String("contract_id", id), zap.Error(err))
			continue
		}
		if moved {
			expired++
			metrics.ExpiredContracts.Inc()
		}
	}
	return expired, nil
}

func (uc *contractUseCase) RenderContract(ctx context.Context, id string, w io.Writer) error {
	c, err := uc.GetContract(ctx, id)
	if err != nil {
		return err
	}
	client, err := uc.clients.FindByID(ctx, c.ClientID)
	if err != nil {
		return err
	}
	office, err := uc.offices.FindByID(ctx, c.OfficeID)
	if err != nil {
		return err
	}

	names := make(map[string]string, len(c.Items))
	for _, it := range c.Items {
		if _, ok := names[it.ProductID]; ok {
			continue
		}
		p, err := uc.products.FindByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if p != nil {
			names[it.ProductID] = p.Name
		}
	}

	return uc.renderer.Render(w, document.ContractView{
		Contract:     c,
		Client:       client,
		Office:       office,
		ProductNames: names,
		GeneratedAt:  uc.now(),
	})
}

func validatePeriod(start, end time.Time, discount decimal.Decimal) error {
	if start.IsZero() || end.IsZero() {
		return apperr.Invalid("start and end dates are required")
	}
	if end.Before(start) {
		return apperr.Invalid("end date cannot be before start date")
	}
	if discount.IsNegative() {
		return apperr.Invalid("discount cannot be negative")
	}
	if !model.IsMoney(discount) {
		return apperr.Invalid("discount %s has more than two decimals", discount)
	}
	return nil
}

func (uc *contractUseCase) buildItems(ctx context.Context, contractID string, inputs []dto.ItemInput) ([]model.ContractItem, error) {
	if len(inputs) == 0 {
		return nil, apperr.Invalid("a contract needs at least one item")
	}

	items := make([]model.ContractItem, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, apperr.Invalid("item quantity must be positive")
		}
		p, err := uc.products.FindByID(ctx, in.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.IsActive {
			return nil, apperr.NotFound("Product")
		}
		if !p.IsRentable() {
			return nil, apperr.Invalid("product %s is not for rent", p.SKU)
		}

		price := p.RentalPrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		if price.IsNegative() {
			return nil, apperr.Invalid("unit price cannot be negative")
		}
		if !model.IsMoney(price) {
			return nil, apperr.Invalid("unit price %s has more than two decimals", price)
		}

		item := model.ContractItem{
			ID:         uuid.New().String(),
			ContractID: contractID,
			ProductID:  in.ProductID,
			Quantity:   in.Quantity,
			UnitPrice:  price,
		}
		for _, s := range in.Services {
			name := strings.TrimSpace(s.Name)
			if name == "" {
				return nil, apperr.Invalid("service name is required")
			}
			if s.Price.IsNegative() {
				return nil, apperr.Invalid("service price cannot be negative")
			}
			if !model.IsMoney(s.Price) {
				return nil, apperr.Invalid("service price %s has more than two decimals", s.Price)
			}
			item.Services = append(item.Services, model.ItemService{
				ID:             uuid.New().String(),
				ContractItemID: item.ID,
				Name:           name,
				Price:          s.Price,
			})
		}
		items = append(items, item)
	}
	return items, nil
}

// mutate locks the contract, runs fn and commits. Status changes fn recorded
// are announced only after the commit.
func (uc *contractUseCase) mutate(ctx context.Context, id string, fn func(ctx context.Context, c *model.Contract) error) (*model.Contract, error) {
	var (
		result *model.Contract
		seen   int
	)
	err := uc.txm.WithinTx(ctx, func(ctx context.Context) error {
		c, err := uc.repo.FindByID(ctx, id, true)
		if err != nil {
			return err
		}
		if c == nil {
			return apperr.NotFound("Contract")
		}
		seen = len(c.History)
		if err := fn(ctx, c); err != nil {
			return err
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, ch := range result.History[seen:] {
		uc.announce(ctx, result, ch)
	}
	return result, nil
}

func (uc *contractUseCase) transition(ctx context.Context, c *model.Contract, to model.ContractStatus, notes string) error {
	from := c.Status
	if !contract.CanTransition(from, to) {
		return apperr.IllegalTransition("Contract", string(from), string(to))
	}

	now := uc.now()
	c.Status = to
	c.UpdatedAt = now
	if err := uc.repo.Update(ctx, c); err != nil {
		return err
	}

	entry := model.ContractStatusChange{
		ID:         uuid.New().String(),
		ContractID: c.ID,
		FromStatus: &from,
		ToStatus:   to,
		Notes:      notes,
		ChangedBy:  model.NullString(auth.GetUserID(ctx)),
		ChangedAt:  now,
	}
	if err := uc.repo.AddStatusChange(ctx, &entry); err != nil {
		return err
	}
	c.History = append(c.History, entry)
	return nil
}

func (uc *contractUseCase) announce(ctx context.Context, c *model.Contract, ch model.ContractStatusChange) {
	from := ""
	if ch.FromStatus != nil {
		from = string(*ch.FromStatus)
	}
	metrics.ContractTransitions.WithLabelValues(from, string(ch.ToStatus)).Inc()

	uc.logger.Info("contract status changed",
		zap.String("contract_id", c.ID),
		zap.String("from", from),
		zap.String("to", string(ch.ToStatus)))

	event := notification.Event{
		Type:     notification.ContractStatusChanged,
		EntityID: c.ID,
		Payload: map[string]interface{}{
			"number":      c.Number,
			"client_id":   c.ClientID,
			"office_id":   c.OfficeID,
			"from":        from,
			"to":          string(ch.ToStatus),
			"total":       c.Total.String(),
			"amount_paid": c.AmountPaid.String(),
			"notes":       ch.Notes,
		},
		OccurredAt: ch.ChangedAt,
	}
	if err := uc.notifier.Send(ctx, event); err != nil {
		uc.logger.Warn("failed to send notification",
			zap.String("type", string(event.Type)),
			zap.String("contract_id", c.ID),
			zap.Error(err))
	}
}
