package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/supplierorder/dto"
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

func (r *PGRepository) Create(ctx context.Context, o *model.SupplierOrder) error {
	q := postgres.Conn(ctx, r.DB)

	query := `
        INSERT INTO supplier_orders (
            id, supplier_id, office_id, status, total, notes,
            expected_at, received_at, created_by, created_at, updated_at
        )
        VALUES (
            :id, :supplier_id, :office_id, :status, :total, :notes,
            :expected_at, :received_at, :created_by, :created_at, :updated_at
        )
    `
	if _, err := q.NamedExecContext(ctx, query, o); err != nil {
		return err
	}

	lineQuery := `
        INSERT INTO supplier_order_lines (id, supplier_order_id, product_id, quantity, unit_cost, subtotal)
        VALUES (:id, :supplier_order_id, :product_id, :quantity, :unit_cost, :subtotal)
    `
	for i := range o.Lines {
		if _, err := q.NamedExecContext(ctx, lineQuery, &o.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string, forUpdate bool) (*model.SupplierOrder, error) {
	q := postgres.Conn(ctx, r.DB)

	query := `SELECT * FROM supplier_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var o model.SupplierOrder
	if err := q.GetContext(ctx, &o, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := q.SelectContext(ctx, &o.Lines,
		`SELECT * FROM supplier_order_lines WHERE supplier_order_id = $1 ORDER BY id`, id); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SupplierOrderFilters) ([]model.SupplierOrder, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.SupplierID != "" {
		conditions = append(conditions, "supplier_id = :supplier_id")
		args["supplier_id"] = f.SupplierID
	}
	if f.OfficeID != "" {
		conditions = append(conditions, "office_id = :office_id")
		args["office_id"] = f.OfficeID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	whereClause := postgres.Where(conditions)
	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM supplier_orders"+whereClause, args); err != nil {
		return nil, 0, err
	}

	var orders []model.SupplierOrder
	query := postgres.Paginate("SELECT * FROM supplier_orders"+whereClause+" ORDER BY created_at DESC", f.Page, f.PageSize)
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

	var lines []model.SupplierOrderLine
	if err := q.SelectContext(ctx, &lines,
		`SELECT * FROM supplier_order_lines WHERE supplier_order_id = ANY($1) ORDER BY id`, pq.Array(ids)); err != nil {
		return nil, 0, err
	}
	for _, l := range lines {
		i := index[l.SupplierOrderID]
		orders[i].Lines = append(orders[i].Lines, l)
	}
	return orders, count, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, o *model.SupplierOrder) error {
	query := `
        UPDATE supplier_orders
        SET status = :status, received_at = :received_at, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, o)
	return err
}
