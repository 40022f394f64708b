package services

import (
	"encoding/json"
	"strings"

	"github.com/spendsmart/spendsmart-api/models"
)

// ============================================================================
// PROMPT COMPOSITOR
// ============================================================================

// SystemPersona is the fixed identity line for every chat completion.
const SystemPersona = "You are SpendSmart, a helpful personal finance assistant for Indian users. " +
	"Use only the provided summary and transactions to answer. Be concise. Use ₹ for currency."

// FormatTransactionLine renders one transaction as a human-readable line:
// TYPE of ₹AMOUNT on DATE (CATEGORY) — DESCRIPTION
func FormatTransactionLine(tx models.Transaction) string {
	date := "unknown date"
	if !tx.TransactionTime.IsZero() {
		date = tx.TransactionTime.Format("02/01/2006")
	}

	category := tx.CategoryName
	if category == "" {
		category = "Uncategorized"
	}

	var sb strings.Builder
	sb.WriteString(strings.ToUpper(tx.TransactionType))
	sb.WriteString(" of ₹")
	sb.WriteString(tx.Amount.String())
	sb.WriteString(" on ")
	sb.WriteString(date)
	sb.WriteString(" (")
	sb.WriteString(category)
	sb.WriteString(")")
	if tx.Description != "" {
		sb.WriteString(" — ")
		sb.WriteString(tx.Description)
	}
	return sb.String()
}

// ComposePrompt concatenates the persona, a context block (summary as JSON
// plus one line per transaction), the user's message and the assistant cue.
// A nil summary serializes as "null" — the model still gets the raw lines.
func ComposePrompt(persona string, summary *models.FinancialSummary, transactions []models.Transaction, message string) string {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		summaryJSON = []byte("null")
	}

	lines := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		lines = append(lines, FormatTransactionLine(tx))
	}

	context := "Summary: " + string(summaryJSON) + "\nRecent transactions:\n" + strings.Join(lines, "\n")

	sections := []string{
		persona,
		context,
		"User: " + message,
		"Assistant:",
	}
	return strings.Join(sections, "\n\n")
}
