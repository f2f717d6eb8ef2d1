package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/contract/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Contract) error {
	q := postgres.Conn(ctx, r.DB)

	query := `
        INSERT INTO contracts (
            id, number, client_id, office_id, status, start_date, end_date,
            subtotal, discount, total, amount_paid, notes, created_by,
            created_at, updated_at
        )
        VALUES (
            :id, :number, :client_id, :office_id, :status, :start_date, :end_date,
            :subtotal, :discount, :total, :amount_paid, :notes, :created_by,
            :created_at, :updated_at
        )
    `
	if _, err := q.NamedExecContext(ctx, query, c); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperr.Conflict("Contract", "number "+c.Number)
		}
		return err
	}
	return insertItems(ctx, q, c.Items)
}

func insertItems(ctx context.Context, q postgres.Queryer, items []model.ContractItem) error {
	itemQuery := `
        INSERT INTO contract_items (
            id, contract_id, product_id, quantity, unit_price, days, subtotal,
            returned_quantity, missing_quantity
        )
        VALUES (
            :id, :contract_id, :product_id, :quantity, :unit_price, :days, :subtotal,
            :returned_quantity, :missing_quantity
        )
    `
	serviceQuery := `
        INSERT INTO contract_item_services (id, contract_item_id, name, price)
        VALUES (:id, :contract_item_id, :name, :price)
    `
	for i := range items {
		if _, err := q.NamedExecContext(ctx, itemQuery, &items[i]); err != nil {
			return err
		}
		for j := range items[i].Services {
			if _, err := q.NamedExecContext(ctx, serviceQuery, &items[i].Services[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string, forUpdate bool) (*model.Contract, error) {
	q := postgres.Conn(ctx, r.DB)

	query := `SELECT * FROM contracts WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var c model.Contract
	if err := q.GetContext(ctx, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	contracts := []model.Contract{c}
	if err := r.loadItems(ctx, q, contracts); err != nil {
		return nil, err
	}
	c = contracts[0]

	if err := q.SelectContext(ctx, &c.History,
		`SELECT * FROM contract_status_history WHERE contract_id = $1 ORDER BY changed_at, id`, id); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ContractFilters) ([]model.Contract, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.ClientID != "" {
		conditions = append(conditions, "client_id = :client_id")
		args["client_id"] = f.ClientID
	}
	if f.OfficeID != "" {
		conditions = append(conditions, "office_id = :office_id")
		args["office_id"] = f.OfficeID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.From != nil {
		conditions = append(conditions, "start_date >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "start_date < :to")
		args["to"] = *f.To
	}
	whereClause := postgres.Where(conditions)
	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM contracts"+whereClause, args); err != nil {
		return nil, 0, err
	}

	var contracts []model.Contract
	query := postgres.Paginate("SELECT * FROM contracts"+whereClause+" ORDER BY start_date DESC, number", f.Page, f.PageSize)
	if err := postgres.NamedSelect(ctx, q, &contracts, query, args); err != nil {
		return nil, 0, err
	}
	if err := r.loadItems(ctx, q, contracts); err != nil {
		return nil, 0, err
	}
	return contracts, count, nil
}

// loadItems attaches items and their services to each contract.
func (r *PGRepository) loadItems(ctx context.Context, q postgres.Queryer, contracts []model.Contract) error {
	if len(contracts) == 0 {
		return nil
	}

	ids := make([]string, len(contracts))
	byContract := make(map[string]int, len(contracts))
	for i, c := range contracts {
		ids[i] = c.ID
		byContract[c.ID] = i
	}

	var items []model.ContractItem
	if err := q.SelectContext(ctx, &items,
		`SELECT * FROM contract_items WHERE contract_id = ANY($1) ORDER BY id`, pq.Array(ids)); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	itemIDs := make([]string, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}
	var services []model.ItemService
	if err := q.SelectContext(ctx, &services,
		`SELECT * FROM contract_item_services WHERE contract_item_id = ANY($1) ORDER BY id`, pq.Array(itemIDs)); err != nil {
		return err
	}
	servicesByItem := make(map[string][]model.ItemService)
	for _, s := range services {
		servicesByItem[s.ContractItemID] = append(servicesByItem[s.ContractItemID], s)
	}

	for _, it := range items {
		it.Services = servicesByItem[it.ID]
		i := byContract[it.ContractID]
		contracts[i].Items = append(contracts[i].Items, it)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Contract) error {
	query := `
        UPDATE contracts
        SET status = :status,
            start_date = :start_date,
            end_date = :end_date,
            subtotal = :subtotal,
            discount = :discount,
            total = :total,
            amount_paid = :amount_paid,
            notes = :notes,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, c)
	if postgres.IsCheckViolation(err) {
		return apperr.Invalid("contract %s violates a stored constraint", c.ID)
	}
	return err
}

func (r *PGRepository) ReplaceItems(ctx context.Context, c *model.Contract) error {
	q := postgres.Conn(ctx, r.DB)
	if _, err := q.ExecContext(ctx, `DELETE FROM contract_items WHERE contract_id = $1`, c.ID); err != nil {
		return err
	}
	return insertItems(ctx, q, c.Items)
}

func (r *PGRepository) UpdateItemReturns(ctx context.Context, items []model.ContractItem) error {
	q := postgres.Conn(ctx, r.DB)
	query := `
        UPDATE contract_items
        SET returned_quantity = :returned_quantity, missing_quantity = :missing_quantity
        WHERE id = :id
    `
	for i := range items {
		if _, err := q.NamedExecContext(ctx, query, &items[i]); err != nil {
			if postgres.IsCheckViolation(err) {
				return apperr.Invalid("returned and missing units exceed quantity for item %s", items[i].ID)
			}
			return err
		}
	}
	return nil
}

func (r *PGRepository) AddStatusChange(ctx context.Context, change *model.ContractStatusChange) error {
	query := `
        INSERT INTO contract_status_history (
            id, contract_id, from_status, to_status, notes, changed_by, changed_at
        )
        VALUES (
            :id, :contract_id, :from_status, :to_status, :notes, :changed_by, :changed_at
        )
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, change)
	return err
}

func (r *PGRepository) FindOverdue(ctx context.Context, now time.Time) ([]string, error) {
	var ids []string
	query := `SELECT id FROM contracts WHERE status = $1 AND end_date < $2 ORDER BY end_date`
	err := postgres.Conn(ctx, r.DB).SelectContext(ctx, &ids, query, model.ContractActive, now)
	return ids, err
}
