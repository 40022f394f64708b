package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// TRANSACTION MODEL
// ============================================================================

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"
)

type Transaction struct {
	ID              int             `json:"id"`
	UserID          int             `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transaction_type"`
	Description     string          `json:"description,omitempty"`
	CategoryID      *int            `json:"category_id,omitempty"`
	CategoryName    string          `json:"category_name,omitempty"` // from LEFT JOIN, empty when uncategorized
	TransactionTime time.Time       `json:"transaction_time"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type Category struct {
	ID           int    `json:"id"`
	CategoryName string `json:"category_name"`
	IsDefault    bool   `json:"is_default"`
	UserID       *int   `json:"user_id,omitempty"` // nil for global defaults
}

// ============================================================================
// TRANSACTION REQUESTS
// ============================================================================

type CreateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string          `json:"transaction_type" binding:"required,oneof=income expense"`
	Description     string          `json:"description"`
	CategoryID      *int            `json:"category_id"`
	TransactionTime time.Time       `json:"transaction_time" binding:"required"`
}

type UpdateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionType string          `json:"transaction_type" binding:"required,oneof=income expense"`
	Description     string          `json:"description"`
	CategoryID      *int            `json:"category_id"`
}

// DashboardSummary holds the aggregate totals shown on the dashboard.
type DashboardSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}
