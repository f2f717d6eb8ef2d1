package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-rental-service/internal/internalorder/dto"
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

func (r *PGRepository) Create(ctx context.Context, o *model.InternalOrder) error {
	q := postgres.Conn(ctx, r.DB)

	query := `
        INSERT INTO internal_orders (
            id, source_office_id, destination_office_id, status, notes,
            created_by, completed_at, created_at, updated_at
        )
        VALUES (
            :id, :source_office_id, :destination_office_id, :status, :notes,
            :created_by, :completed_at, :created_at, :updated_at
        )
    `
	if _, err := q.NamedExecContext(ctx, query, o); err != nil {
		return err
	}

	lineQuery := `
        INSERT INTO internal_order_lines (id, internal_order_id, product_id, quantity)
        VALUES (:id, :internal_order_id, :product_id, :quantity)
    `
	for i := range o.Lines {
		if _, err := q.NamedExecContext(ctx, lineQuery, &o.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string, forUpdate bool) (*model.InternalOrder, error) {
	q := postgres.Conn(ctx, r.DB)

	query := `SELECT * FROM internal_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var o model.InternalOrder
	if err := q.GetContext(ctx, &o, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := q.SelectContext(ctx, &o.Lines,
		`SELECT * FROM internal_order_lines WHERE internal_order_id = $1 ORDER BY id`, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.InternalOrderFilters) ([]model.InternalOrder, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.OfficeID != "" {
		conditions = append(conditions, "(source_office_id = :office_id OR destination_office_id = :office_id)")
		args["office_id"] = f.OfficeID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	whereClause := postgres.Where(conditions)
	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM internal_orders"+whereClause, args); err != nil {
		return nil, 0, err
	}

	var orders []model.InternalOrder
	query := postgres.Paginate("SELECT * FROM internal_orders"+whereClause+" ORDER BY created_at DESC", f.Page, f.PageSize)
	if err := postgres.NamedSelect(ctx, q, &orders, query, args); err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, count, nil
	}

	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		index[o.ID] = i
	}

	var lines []model.InternalOrderLine
	if err := q.SelectContext(ctx, &lines,
		`SELECT * FROM internal_order_lines WHERE internal_order_id = ANY($1) ORDER BY id`, pq.Array(ids)); err != nil {
		return nil, 0, err
	}
	for _, l := range lines {
		i := index[l.InternalOrderID]
		orders[i].Lines = append(orders[i].Lines, l)
	}
	return orders, count, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, o *model.InternalOrder) error {
	query := `
        UPDATE internal_orders
        SET status = :status, completed_at = :completed_at, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, o)
	return err
}
