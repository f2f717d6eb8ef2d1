package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/stock/dto"
	"github.com/fekuna/omnipos-rental-service/pkg/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) GetByOfficeProduct(ctx context.Context, officeID, productID string) (*model.StockItem, error) {
	var item model.StockItem
	query := `SELECT * FROM stock_items WHERE office_id = $1 AND product_id = $2`

	err := postgres.Conn(ctx, r.DB).GetContext(ctx, &item, query, officeID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // caller decides whether a missing row means zero stock
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockItem, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.OfficeID != "" {
		conditions = append(conditions, "office_id = :office_id")
		args["office_id"] = f.OfficeID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.LowStock {
		conditions = append(conditions, "quantity <= reorder_point AND reorder_point > 0")
	}
	whereClause := postgres.Where(conditions)

	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM stock_items"+whereClause, args); err != nil {
		return nil, 0, err
	}

	query := postgres.Paginate("SELECT * FROM stock_items"+whereClause+" ORDER BY updated_at DESC", f.Page, f.PageSize)

	var items []model.StockItem
	if err := postgres.NamedSelect(ctx, q, &items, query, args); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}

func (r *PGRepository) ApplyMovement(ctx context.Context, m *model.StockMovement) error {
	q := postgres.Conn(ctx, r.DB)

	var after int
	var err error
	if m.QuantityChange >= 0 {
		err = q.QueryRowxContext(ctx, `
        INSERT INTO stock_items (id, office_id, product_id, quantity, reorder_point, updated_at)
        VALUES ($1, $2, $3, $4, 0, $5)
        ON CONFLICT (office_id, product_id)
        DO UPDATE SET
            quantity = stock_items.quantity + EXCLUDED.quantity,
            updated_at = EXCLUDED.updated_at
        RETURNING quantity`,
			uuid.New().String(), m.OfficeID, m.ProductID, m.QuantityChange, m.CreatedAt,
		).Scan(&after)
	} else {
		// the guard keeps the row untouched (and returns nothing) on shortfall
		err = q.QueryRowxContext(ctx, `
        UPDATE stock_items
        SET quantity = quantity + $1, updated_at = $2
        WHERE office_id = $3 AND product_id = $4 AND quantity + $1 >= 0
        RETURNING quantity`,
			m.QuantityChange, m.CreatedAt, m.OfficeID, m.ProductID,
		).Scan(&after)
	}

	switch {
	case errors.Is(err, sql.ErrNoRows), postgres.IsCheckViolation(err):
		return apperr.InsufficientStock(m.OfficeID, m.ProductID)
	case postgres.IsForeignKeyViolation(err):
		return apperr.Invalid("unknown office %s or product %s", m.OfficeID, m.ProductID)
	case err != nil:
		return fmt.Errorf("failed to update stock: %w", err)
	}

	m.QuantityAfter = after
	m.QuantityBefore = after - m.QuantityChange

	insertLogQuery := `
        INSERT INTO stock_movements (
            id, office_id, product_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference_type, reference_id,
            notes, created_by, created_at
        )
        VALUES (
            :id, :office_id, :product_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference_type, :reference_id,
            :notes, :created_by, :created_at
        )
    `
	if _, err := q.NamedExecContext(ctx, insertLogQuery, m); err != nil {
		return fmt.Errorf("failed to log movement: %w", err)
	}
	return nil
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	conditions := []string{}
	args := map[string]interface{}{}

	if f.OfficeID != "" {
		conditions = append(conditions, "office_id = :office_id")
		args["office_id"] = f.OfficeID
	}
	if f.ProductID != "" {
		conditions = append(conditions, "product_id = :product_id")
		args["product_id"] = f.ProductID
	}
	if f.MovementType != "" {
		conditions = append(conditions, "movement_type = :movement_type")
		args["movement_type"] = f.MovementType
	}
	if f.ReferenceID != "" {
		conditions = append(conditions, "reference_id = :reference_id")
		args["reference_id"] = f.ReferenceID
	}
	whereClause := postgres.Where(conditions)

	q := postgres.Conn(ctx, r.DB)

	var count int
	if err := postgres.NamedGet(ctx, q, &count, "SELECT count(*) FROM stock_movements"+whereClause, args); err != nil {
		return nil, 0, err
	}

	query := postgres.Paginate("SELECT * FROM stock_movements"+whereClause+" ORDER BY created_at DESC", f.Page, f.PageSize)

	var items []model.StockMovement
	if err := postgres.NamedSelect(ctx, q, &items, query, args); err != nil {
		return nil, 0, err
	}
	return items, count, nil
}
