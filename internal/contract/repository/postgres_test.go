package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	contractColumns = []string{"id", "number", "client_id", "office_id", "status", "start_date", "end_date",
		"subtotal", "discount", "total", "amount_paid", "notes", "created_by", "created_at", "updated_at"}
	itemColumns = []string{"id", "contract_id", "product_id", "quantity", "unit_price", "days", "subtotal",
		"returned_quantity", "missing_quantity"}
)

func newRepo(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestFindByID_LoadsItemsServicesAndHistory(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM contracts WHERE id = $1 FOR UPDATE")).
		WithArgs("k-1").
		WillReturnRows(sqlmock.NewRows(contractColumns).
			AddRow("k-1", "C-20260301-abcdef", "ana", "north", "paid", now, now.AddDate(0, 0, 3),
				"75", "5", "70", "70", "", "clerk-1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM contract_items WHERE contract_id = ANY($1)")).
		WillReturnRows(sqlmock.NewRows(itemColumns).
			AddRow("i-1", "k-1", "tent", 2, "10", 3, "75", 0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM contract_item_services WHERE contract_item_id = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contract_item_id", "name", "price"}).
			AddRow("s-1", "i-1", "delivery", "15"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM contract_status_history WHERE contract_id = $1")).
		WithArgs("k-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "contract_id", "from_status", "to_status", "notes", "changed_by", "changed_at"}).
			AddRow("h-1", "k-1", nil, "budgeted", "", "clerk-1", now).
			AddRow("h-2", "k-1", "budgeted", "paid", "", "clerk-1", now))

	c, err := repo.FindByID(context.Background(), "k-1", true)
	require.NoError(t, err)
	assert.Equal(t, model.ContractPaid, c.Status)
	assert.True(t, decimal.NewFromInt(70).Equal(c.Total))
	require.Len(t, c.Items, 1)
	require.Len(t, c.Items[0].Services, 1)
	assert.Equal(t, "delivery", c.Items[0].Services[0].Name)
	require.Len(t, c.History, 2)
	assert.Nil(t, c.History[0].FromStatus)
	assert.Equal(t, model.ContractBudgeted, *c.History[1].FromStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_Missing(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM contracts WHERE id = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(contractColumns))

	c, err := repo.FindByID(context.Background(), "ghost", false)
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_InsertsItemsAndServices(t *testing.T) {
	repo, mock := newRepo(t)
	c := &model.Contract{
		BaseModel: model.BaseModel{ID: "k-1"},
		Number:    "C-20260301-abcdef",
		Status:    model.ContractBudgeted,
		Items: []model.ContractItem{{
			ID: "i-1", ContractID: "k-1", ProductID: "tent", Quantity: 2,
			Services: []model.ItemService{{ID: "s-1", ContractItemID: "i-1", Name: "delivery"}},
		}},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contracts")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contract_items")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contract_item_services")).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), c))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateNumber(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contracts")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &model.Contract{Number: "C-1"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestUpdateItemReturns_CheckViolation(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE contract_items")).
		WillReturnError(&pq.Error{Code: "23514"})

	err := repo.UpdateItemReturns(context.Background(), []model.ContractItem{{ID: "i-1", ReturnedQuantity: 5, MissingQuantity: 1}})
	assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
}

func TestReplaceItems_DeletesThenInserts(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM contract_items WHERE contract_id = $1")).
		WithArgs("k-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO contract_items")).WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ReplaceItems(context.Background(), &model.Contract{
		BaseModel: model.BaseModel{ID: "k-1"},
		Items:     []model.ContractItem{{ID: "i-9", ContractID: "k-1", ProductID: "chair", Quantity: 10}},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOverdue(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM contracts WHERE status = $1 AND end_date < $2")).
		WithArgs("active", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("k-1").AddRow("k-2"))

	ids, err := repo.FindOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"k-1", "k-2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
