package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-rental-service/internal/client/dto"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Client) error {
	query := `
        INSERT INTO clients (
            id, full_name, document_number, email, phone, address,
            is_active, created_at, updated_at
        )
        VALUES (
            :id, :full_name, :document_number, :email, :phone, :address,
            :is_active, :created_at, :updated_at
        )
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Client, error) {
	var c model.Client
	query := `SELECT * FROM clients WHERE id = $1 LIMIT 1`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ClientFilters) ([]model.Client, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if f.Search != "" {
		conditions = append(conditions, "(full_name ILIKE :search OR document_number ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	whereClause := postgres.Where(conditions)

	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM clients"+whereClause, args); err != nil {
		return nil, 0, err
	}

	query := postgres.Paginate("SELECT * FROM clients"+whereClause+" ORDER BY full_name", f.Page, f.PageSize)

	var clients []model.Client
	if err := postgres.NamedSelect(ctx, q, &clients, query, args); err != nil {
		return nil, 0, err
	}
	return clients, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Client) error {
	query := `
        UPDATE clients
        SET full_name = :full_name,
            document_number = :document_number,
            email = :email,
            phone = :phone,
            address = :address,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) IsDocumentUnique(ctx context.Context, documentNumber, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM clients WHERE document_number = $1`
	args := []interface{}{documentNumber}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}
	if err := postgres.Conn(ctx, r.DB).GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) HasOpenContracts(ctx context.Context, clientID string) (bool, error) {
	var open bool
	query := `
        SELECT EXISTS (
            SELECT 1 FROM contracts
            WHERE client_id = $1
              AND status NOT IN ('returned_ok', 'returned_failed', 'canceled')
        )
    `
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &open, query, clientID)
	return open, err
}
