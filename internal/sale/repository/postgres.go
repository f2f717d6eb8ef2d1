package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/sale/dto"
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

func (r *PGRepository) Create(ctx context.Context, s *model.Sale) error {
	q := postgres.Conn(ctx, r.DB)

	query := `
        INSERT INTO sales (
            id, office_id, client_id, status, payment_method, total,
            created_by, canceled_at, created_at, updated_at
        )
        VALUES (
            :id, :office_id, :client_id, :status, :payment_method, :total,
            :created_by, :canceled_at, :created_at, :updated_at
        )
    `
	if _, err := q.NamedExecContext(ctx, query, s); err != nil {
		return err
	}

	lineQuery := `
        INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, discount, subtotal)
        VALUES (:id, :sale_id, :product_id, :quantity, :unit_price, :discount, :subtotal)
    `
	for i := range s.Lines {
		if _, err := q.NamedExecContext(ctx, lineQuery, &s.Lines[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string, forUpdate bool) (*model.Sale, error) {
	q := postgres.Conn(ctx, r.DB)

	query := `SELECT * FROM sales WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var s model.Sale
	if err := q.GetContext(ctx, &s, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := q.SelectContext(ctx, &s.Lines, `SELECT * FROM sale_lines WHERE sale_id = $1 ORDER BY id`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SaleFilters) ([]model.Sale, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.OfficeID != "" {
		conditions = append(conditions, "office_id = :office_id")
		args["office_id"] = f.OfficeID
	}
	if f.ClientID != "" {
		conditions = append(conditions, "client_id = :client_id")
		args["client_id"] = f.ClientID
	}
	if f.Status != "" {
		conditions = append(conditions, "status = :status")
		args["status"] = f.Status
	}
	if f.From != nil {
		conditions = append(conditions, "created_at >= :from")
		args["from"] = *f.From
	}
	if f.To != nil {
		conditions = append(conditions, "created_at < :to")
		args["to"] = *f.To
	}
	whereClause := postgres.Where(conditions)
	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM sales"+whereClause, args); err != nil {
		return nil, 0, err
	}

	var sales []model.Sale
	query := postgres.Paginate("SELECT * FROM sales"+whereClause+" ORDER BY created_at DESC", f.Page, f.PageSize)
	if err := postgres.NamedSelect(ctx, q, &sales, query, args); err != nil {
		return nil, 0, err
	}
	if len(sales) == 0 {
		return sales, count, nil
	}

	ids := make([]string, len(sales))
	index := make(map[string]int, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
		index[s.ID] = i
	}

	var lines []model.SaleLine
	if err := q.SelectContext(ctx, &lines,
		`SELECT * FROM sale_lines WHERE sale_id = ANY($1) ORDER BY id`, pq.Array(ids)); err != nil {
		return nil, 0, err
	}
	for _, l := range lines {
		i := index[l.SaleID]
		sales[i].Lines = append(sales[i].Lines, l)
	}
	return sales, count, nil
}

func (r *PGRepository) UpdateStatus(ctx context.Context, s *model.Sale) error {
	query := `
        UPDATE sales
        SET status = :status, canceled_at = :canceled_at, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, s)
	return err
}
