package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/studymate/internal/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*SQLStore, *sql.DB) {
	t.Helper()
	s, db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return s, db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k1", []byte(`{"tests":1}`)))

	v, err := s.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"tests":1}`), v)
}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	s, _ := setupStore(t)

	v, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("old")))
	require.NoError(t, s.Set(ctx, "k", []byte("new")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), v)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, s.Delete(ctx, "x"))

	v, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Delete(ctx, "x"))
}

func TestClosedDB_ErrorsWrapped(t *testing.T) {
	s, db := setupStore(t)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := s.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	require.ErrorContains(t, s.Set(ctx, "k", []byte("v")), "failed to set kv[k]")
	require.ErrorContains(t, s.Delete(ctx, "k"), "failed to delete kv[k]")
}

func TestPostgresDialect_UsesNumberedPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLStore(db, dbx.DialectPostgres)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`VALUES ($1, $2, CURRENT_TIMESTAMP)`)).
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)).
		WithArgs("k").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte("v")))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv_store WHERE key = $1`)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_store WHERE key = $1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Set(ctx, "k", []byte("v")))

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	v, err = s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.Delete(ctx, "k"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_CommitsAllWrites(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(ctx context.Context, kv Store) error {
		if err := kv.Set(ctx, "a", []byte("1")); err != nil {
			return err
		}
		return kv.Set(ctx, "b", []byte("2"))
	})
	require.NoError(t, err)

	for k, want := range map[string]string{"a": "1", "b": "2"} {
		v, err := s.Get(ctx, k)
		require.NoError(t, err)
		assert.Equal(t, want, string(v))
	}
}

func TestInTx_ErrorDiscardsWrites(t *testing.T) {
	s, _ := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "a", []byte("old")))

	boom := errors.New("boom")
	err := s.InTx(ctx, func(ctx context.Context, kv Store) error {
		require.NoError(t, kv.Set(ctx, "a", []byte("new")))
		require.NoError(t, kv.Set(ctx, "b", []byte("2")))

		v, err := kv.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "new", string(v))
		return boom
	})
	require.ErrorIs(t, err, boom)

	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "old", string(v))
	v, err = s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestInTx_NestedRunsOnSameTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLStore(db, dbx.DialectPostgres)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv_store WHERE key = $1`)).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = s.InTx(ctx, func(ctx context.Context, kv Store) error {
		return kv.(Transactor).InTx(ctx, func(ctx context.Context, inner Store) error {
			return inner.Delete(ctx, "k")
		})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
