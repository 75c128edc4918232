package orm_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsstand/orm"
)

func newMockDB(t *testing.T) (*orm.DB, sqlmock.Sqlmock) {
	t.Helper()

	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })

	return orm.New(raw, orm.SQLite), mock
}

func TestTransactionCommit(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE authors").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.Transaction(t.Context(), func(tx *orm.Tx) error {
		_, err := tx.ExecContext(t.Context(), "UPDATE authors SET name = ? WHERE id = ?", "Alice", 1)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollbackOnError(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := db.Transaction(t.Context(), func(*orm.Tx) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollbackOnPanic(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	require.Panics(t, func() {
		_ = db.Transaction(t.Context(), func(*orm.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

type capturingLogger struct {
	queries []string
}

func (l *capturingLogger) Log(_ context.Context, query string, _ ...any) {
	l.queries = append(l.queries, query)
}

func TestDebugLogsQueries(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO authors").WillReturnResult(sqlmock.NewResult(1, 1))

	logger := &capturingLogger{}
	debug := db.Debug(logger)

	_, err := debug.ExecContext(t.Context(), "INSERT INTO authors (name) VALUES (?)", "Alice")
	require.NoError(t, err)

	require.Len(t, logger.queries, 1)
	assert.Equal(t, "INSERT INTO authors (name) VALUES (?)", logger.queries[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDebugDoesNotAffectOriginal(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO authors").WillReturnResult(sqlmock.NewResult(1, 1))

	logger := &capturingLogger{}
	_ = db.Debug(logger)

	_, err := db.ExecContext(t.Context(), "INSERT INTO authors (name) VALUES (?)", "Alice")
	require.NoError(t, err)

	assert.Empty(t, logger.queries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
