package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsmart/spendsmart-api/models"
)

var transactionColumns = []string{
	"id", "user_id", "amount", "transaction_type", "description",
	"category_id", "category_name", "transaction_time", "created_at", "updated_at",
}

func TestFetchRecentScopedAndLimited(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(transactionColumns).
		AddRow(2, 7, "200.00", "expense", "groceries", nil, "", now, now, now).
		AddRow(1, 7, "1000.00", "income", "", nil, "", now.Add(-24*time.Hour), now, now)

	mock.ExpectQuery("SELECT t.id, t.user_id, t.amount").
		WithArgs(7, 50).
		WillReturnRows(rows)

	store := NewTransactionStore(db)
	transactions, err := store.FetchRecent(context.Background(), 7, 50)
	require.NoError(t, err)

	require.Len(t, transactions, 2)
	for _, tx := range transactions {
		assert.Equal(t, 7, tx.UserID)
	}
	assert.True(t, transactions[0].TransactionTime.After(transactions[1].TransactionTime),
		"most recent transaction comes first")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReturnsGeneratedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery("INSERT INTO transactions").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	store := NewTransactionStore(db)
	tx := models.Transaction{
		UserID:          7,
		TransactionType: models.TransactionTypeExpense,
		Description:     gofakeit.ProductName(),
		TransactionTime: now,
	}

	require.NoError(t, store.Insert(context.Background(), &tx))
	assert.Equal(t, 42, tx.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOtherUsersTransactionFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The row exists but belongs to another user, so nothing matches
	mock.ExpectExec("UPDATE transactions").
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewTransactionStore(db)
	err = store.Update(context.Background(), 5, 99, models.UpdateTransactionRequest{
		TransactionType: models.TransactionTypeExpense,
	})

	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOtherUsersTransactionFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM transactions").
		WithArgs(5, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewTransactionStore(db)
	err = store.Delete(context.Background(), 5, 99)

	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteOwnTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM transactions").
		WithArgs(5, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := NewTransactionStore(db)
	require.NoError(t, store.Delete(context.Background(), 5, 7))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategoriesIncludesDefaultsAndOwn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := 7
	rows := sqlmock.NewRows([]string{"id", "category_name", "is_default", "user_id"}).
		AddRow(1, "Food", true, nil).
		AddRow(12, "Side hustle", false, userID)

	mock.ExpectQuery("SELECT id, category_name, is_default, user_id").
		WithArgs(userID).
		WillReturnRows(rows)

	store := NewTransactionStore(db)
	categories, err := store.ListCategories(context.Background(), userID)
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.True(t, categories[0].IsDefault)
	assert.Nil(t, categories[0].UserID)
	require.NotNil(t, categories[1].UserID)
	assert.Equal(t, userID, *categories[1].UserID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
