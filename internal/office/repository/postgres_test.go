package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-rental-service/internal/apperr"
	"github.com/fekuna/omnipos-rental-service/internal/model"
	"github.com/fekuna/omnipos-rental-service/internal/office/dto"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*PGRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPGRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCreate_DuplicateName(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO offices")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &model.Office{Name: "Centro"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_Missing(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM offices WHERE id = $1")).
		WithArgs("o-404").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	o, err := repo.FindByID(context.Background(), "o-404")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestFindAll_ActiveOnly(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM offices WHERE is_active = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM offices WHERE is_active = TRUE ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone", "is_active", "created_at", "updated_at"}).
			AddRow("o-1", "Centro", "Av. 1", nil, true, now, now))

	offices, total, err := repo.FindAll(context.Background(), &dto.OfficeFilters{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, offices, 1)
	assert.Equal(t, "Centro", offices[0].Name)
	assert.Nil(t, offices[0].Phone)
}
