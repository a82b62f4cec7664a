package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/fekuna/omnipos-register-service/internal/storage"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockKV(t *testing.T) (*KV, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	kv := NewKV(sqlx.NewDb(db, "sqlmock"))
	t.Cleanup(func() { _ = kv.Close() })
	return kv, mock
}

func TestKV_Load(t *testing.T) {
	kv, mock := newMockKV(t)
	q := regexp.QuoteMeta(`SELECT value FROM kv_documents WHERE doc_key = $1`)

	mock.ExpectQuery(q).WithArgs("pos_products").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))
	got, err := kv.Load(context.Background(), "pos_products")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	mock.ExpectQuery(q).WithArgs("pos_users").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))
	_, err = kv.Load(context.Background(), "pos_users")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKV_SaveUpserts(t *testing.T) {
	kv, mock := newMockKV(t)

	mock.ExpectExec(`INSERT INTO kv_documents .* ON CONFLICT \(doc_key\) DO UPDATE`).
		WithArgs("pos_settings", []byte(`{}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, kv.Save(context.Background(), "pos_settings", []byte(`{}`)))

	mock.ExpectExec(`INSERT INTO kv_documents`).
		WillReturnError(errors.New("connection reset"))
	err := kv.Save(context.Background(), "pos_settings", []byte(`{}`))
	assert.ErrorContains(t, err, "connection reset")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKV_Migrate(t *testing.T) {
	kv, mock := newMockKV(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS kv_documents`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, kv.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "reg", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=reg sslmode=disable", cfg.DSN())
}
