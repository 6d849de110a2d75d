package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockMySQL(t *testing.T) (*MySQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := NewMySQL(db, "")
	s.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, mock
}

func TestMySQLGet(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockMySQL(t)
	query := regexp.QuoteMeta("SELECT value FROM storefront_kv WHERE storage_key = ?")

	mock.ExpectQuery(query).WithArgs("cart-42").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
	v, found, err := s.Get(ctx, "cart-42")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(v))

	mock.ExpectQuery(query).WithArgs("cart-7").WillReturnError(sql.ErrNoRows)
	_, found, err = s.Get(ctx, "cart-7")
	require.NoError(t, err)
	assert.False(t, found)

	mock.ExpectQuery(query).WithArgs("cart-9").WillReturnError(errors.New("conn reset"))
	_, _, err = s.Get(ctx, "cart-9")
	assert.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLSetAndRemove(t *testing.T) {
	ctx := context.Background()
	s, mock := newMockMySQL(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO storefront_kv (storage_key, value, updated_at)")).
		WithArgs("cart-42", []byte(`[{"id":"p1"}]`), time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.Set(ctx, "cart-42", []byte(`[{"id":"p1"}]`)))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM storefront_kv WHERE storage_key = ?")).
		WithArgs("cart-42").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.Remove(ctx, "cart-42"))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLMigrate(t *testing.T) {
	s, mock := newMockMySQL(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS storefront_kv")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, s.Migrate(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
