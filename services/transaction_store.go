package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/spendsmart/spendsmart-api/models"
)

// ============================================================================
// TRANSACTION STORE
// Every query here is scoped by user_id. A mutation that matches zero rows
// means the row does not exist or belongs to someone else — same answer
// either way.
// ============================================================================

var ErrTransactionNotFound = errors.New("transaction not found or not authorized")

type TransactionStore struct {
	DB *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{DB: db}
}

const selectTransactions = `
	SELECT t.id, t.user_id, t.amount, t.transaction_type,
	       COALESCE(t.description, ''), t.category_id,
	       COALESCE(c.category_name, ''),
	       t.transaction_time, t.created_at, t.updated_at
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id
	WHERE t.user_id = $1
	ORDER BY t.transaction_time DESC`

// FetchRecent returns up to limit transactions for the user, most recent
// first, with the category name joined in.
func (s *TransactionStore) FetchRecent(ctx context.Context, userID, limit int) ([]models.Transaction, error) {
	rows, err := s.DB.QueryContext(ctx, selectTransactions+` LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// FetchAll returns every transaction for the user, most recent first.
func (s *TransactionStore) FetchAll(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := s.DB.QueryContext(ctx, selectTransactions, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Amount,
			&tx.TransactionType,
			&tx.Description,
			&tx.CategoryID,
			&tx.CategoryName,
			&tx.TransactionTime,
			&tx.CreatedAt,
			&tx.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

// Insert stores a new transaction and fills in its generated id.
func (s *TransactionStore) Insert(ctx context.Context, tx *models.Transaction) error {
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, amount, transaction_type, description, category_id, transaction_time)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, tx.UserID, tx.Amount, tx.TransactionType, tx.Description, tx.CategoryID, tx.TransactionTime).
		Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// Update rewrites the mutable fields of a transaction the user owns.
func (s *TransactionStore) Update(ctx context.Context, id, userID int, req models.UpdateTransactionRequest) error {
	result, err := s.DB.ExecContext(ctx, `
		UPDATE transactions
		SET amount = $1, transaction_type = $2, description = $3, category_id = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`, req.Amount, req.TransactionType, req.Description, req.CategoryID, id, userID)

	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return checkAffected(result)
}

// Delete removes a transaction the user owns.
func (s *TransactionStore) Delete(ctx context.Context, id, userID int) error {
	result, err := s.DB.ExecContext(ctx, `
		DELETE FROM transactions
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return checkAffected(result)
}

func checkAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ListCategories returns the global defaults plus the user's own categories.
func (s *TransactionStore) ListCategories(ctx context.Context, userID int) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, category_name, is_default, user_id
		FROM categories
		WHERE is_default = TRUE OR user_id = $1
		ORDER BY category_name
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.CategoryName, &cat.IsDefault, &cat.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}
	return categories, nil
}
