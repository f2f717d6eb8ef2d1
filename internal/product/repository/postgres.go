package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/product/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, sku, name, description, brand, kind,
            sale_price, rental_price, cost_price,
            is_active, created_at, updated_at
        )
        VALUES (
            :id, :sku, :name, :description, :brand, :kind,
            :sale_price, :rental_price, :cost_price,
            :is_active, :created_at, :updated_at
        )
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.Kind != "" {
		conditions = append(conditions, "kind = :kind")
		args["kind"] = f.Kind
	}
	if f.ActiveOnly {
		conditions = append(conditions, "is_active = TRUE")
	}
	if f.Search != "" {
		conditions = append(conditions, "(name ILIKE :search OR sku ILIKE :search OR brand ILIKE :search)")
		args["search"] = "%" + f.Search + "%"
	}
	whereClause := postgres.Where(conditions)
	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM products"+whereClause, args); err != nil {
		return nil, 0, err
	}

	// Whitelisted sort columns only.
	orderBy := "created_at DESC"
	if f.SortBy != "" {
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "sku":
			orderBy = "sku"
		default:
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := postgres.Paginate(fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy), f.Page, f.PageSize)

	var products []model.Product
	if err := postgres.NamedSelect(ctx, q, &products, query, args); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET sku = :sku,
            name = :name,
            description = :description,
            brand = :brand,
            sale_price = :sale_price,
            rental_price = :rental_price,
            cost_price = :cost_price,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := postgres.Conn(ctx, r.DB).NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) IsSKUUnique(ctx context.Context, sku, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE sku = $1`
	args := []interface{}{sku}
	if excludeID != "" {
		query += ` AND id != $2`
		args = append(args, excludeID)
	}

	if err := postgres.Conn(ctx, r.DB).GetContext(ctx, &count, query, args...); err != nil {
		return false, err
	}
	return count == 0, nil
}
