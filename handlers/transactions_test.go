package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsmart/spendsmart-api/services"
)

func transactionTestRouter(t *testing.T, userID int) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})

	h := NewTransactionHandler(services.NewTransactionStore(db))
	r.DELETE("/transactions/:id", h.Delete)
	r.GET("/transactions", h.List)

	return r, mock
}

func TestDeleteForeignTransactionReturnsNotFound(t *testing.T) {
	r, mock := transactionTestRouter(t, 99)

	mock.ExpectExec("DELETE FROM transactions").
		WithArgs(5, 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/transactions/5", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found or access denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteInvalidID(t *testing.T) {
	r, _ := transactionTestRouter(t, 7)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/transactions/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTransactionsEmpty(t *testing.T) {
	r, mock := transactionTestRouter(t, 7)

	mock.ExpectQuery("SELECT t.id, t.user_id, t.amount").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "amount", "transaction_type", "description",
			"category_id", "category_name", "transaction_time", "created_at", "updated_at",
		}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/transactions", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"transactions": []}`, w.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}
