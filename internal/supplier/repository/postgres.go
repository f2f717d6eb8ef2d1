package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/supplier/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, s *model.Supplier) error {
	query := `
        INSERT INTO suppliers (
            id, name, tax_id, contact_name, email, phone,
            is_active, created_at, updated_at
        )
        VALUES (
            :id, :name, :tax_id, :contact_name, :email, :phone,
            :is_active, :created_at, :updated_at
        )
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Supplier, error) {
	var s model.Supplier
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &s, `SELECT * FROM suppliers WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SupplierFilters) ([]model.Supplier, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR tax_id ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	whereClause := postgres.Where(conditions)
	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM suppliers"+whereClause, args); err != nil {
		return nil, 0, err
	}

	var suppliers []model.Supplier
	query := postgres.Paginate("SELECT * FROM suppliers"+whereClause+" ORDER BY name", f.Page, f.PageSize)
	if err := postgres.NamedSelect(ctx, q, &suppliers, query, args); err != nil {
		return nil, 0, err
	}
	return suppliers, count, nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.Supplier) error {
	query := `
        UPDATE suppliers
        SET name = :name,
            tax_id = :tax_id,
            contact_name = :contact_name,
            email = :email,
            phone = :phone,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, s)
	return err
}

func (r *PGRepository) IsTaxIDUnique(ctx context.Context, taxID, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM suppliers WHERE tax_id = $1 AND id != $2`
	if err := postgres.Conn(ctx, r.DB).GetContext(ctx, &count, query, taxID, excludeID); err != nil {
		return false, err
	}
	return count == 0, nil
}
