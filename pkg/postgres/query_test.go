package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	assert.Equal(t, "SELECT 1", Paginate("SELECT 1", 3, 0))
	assert.Equal(t, "SELECT 1 LIMIT 20 OFFSET 40", Paginate("SELECT 1", 3, 20))
	assert.Equal(t, "SELECT 1 LIMIT 10 OFFSET 0", Paginate("SELECT 1", 0, 10))
}

func TestWhere(t *testing.T) {
	assert.Equal(t, "", Where(nil))
	assert.Equal(t, " WHERE a = 1 AND b = 2", Where([]string{"a = 1", "b = 2"}))
}

func TestConstraintErrors(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsCheckViolation(&pq.Error{Code: "23514"}))
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("boom")))
}

func TestWithinTx(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	db := sqlx.NewDb(mockDB, "postgres")
	txm := NewTxManager(db)

	t.Run("commits on success and nests", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec("UPDATE things").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := txm.WithinTx(context.Background(), func(ctx context.Context) error {
			assert.True(t, InTx(ctx))
			return txm.WithinTx(ctx, func(ctx context.Context) error {
				_, err := Conn(ctx, db).ExecContext(ctx, "UPDATE things SET x = 1")
				return err
			})
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := txm.WithinTx(context.Background(), func(ctx context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
