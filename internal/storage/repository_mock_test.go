package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expenses/internal/core"
)

func newMockRepository(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepositoryWithDB(db), mock
}

func TestListExpenses_StoreError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT e.expense_id")).
		WillReturnError(errors.New("disk I/O error"))

	_, err := repo.ListExpenses(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpense_RollsBackOnInsertError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id FROM categories WHERE name = ?")).
		WithArgs("Food").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}).AddRow(1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO expenses")).
		WithArgs(int64(1250), "Lunch", "2024-01-15", int64(1)).
		WillReturnError(errors.New("database is locked"))
	mock.ExpectRollback()

	_, err := repo.CreateExpense(context.Background(), lunch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database is locked")
	assert.False(t, errors.Is(err, core.ErrCategoryNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateExpense_UnknownCategoryRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT category_id FROM categories WHERE name = ?")).
		WithArgs("Travel").
		WillReturnRows(sqlmock.NewRows([]string{"category_id"}))
	mock.ExpectRollback()

	in := lunch()
	in.Category = "Travel"
	_, err := repo.CreateExpense(context.Background(), in)
	assert.True(t, errors.Is(err, core.ErrCategoryNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummary_StoreError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT c.name AS category")).
		WillReturnError(errors.New("no such table: categories"))

	_, err := repo.Summary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category summary")
	assert.NoError(t, mock.ExpectationsWereMet())
}
