package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/office/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, o *model.Office) error {
	query := `
        INSERT INTO offices (id, name, address, phone, is_active, created_at, updated_at)
        VALUES (:id, :name, :address, :phone, :is_active, :created_at, :updated_at)
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, o)
	if postgres.IsUniqueViolation(err) {
		return apperr.Conflict("Office", "name "+o.Name)
	}
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Office, error) {
	var o model.Office
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &o, `SELECT * FROM offices WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.OfficeFilters) ([]model.Office, int, error) {
	conditions := []string{}
	if f.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	whereClause := postgres.Where(conditions)
	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := q.GetContext(ctx, &count, "SELECT count(*) FROM offices"+whereClause); err != nil {
		return nil, 0, err
	}

	var offices []model.Office
	query := postgres.Paginate("SELECT * FROM offices"+whereClause+" ORDER BY name", f.Page, f.PageSize)
	if err := q.SelectContext(ctx, &offices, query); err != nil {
		return nil, 0, err
	}
	return offices, count, nil
}

func (r *PGRepository) Update(ctx context.Context, o *model.Office) error {
	query := `
        UPDATE offices
        SET name = :name, address = :address, phone = :phone,
            is_active = :is_active, updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, o)
	if postgres.IsUniqueViolation(err) {
		return apperr.Conflict("Office", "name "+o.Name)
	}
	return err
}
