package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendsmart/spendsmart-api/models"
)

const summaryJSON = `{
	"short_summary": "Spending outpaced income this week.",
	"top_categories": [{"category": "Groceries", "total_amount": 1200}],
	"actionable_tips": ["Cook at home more often."],
	"flagged_items": ["EXPENSE of ₹8000 on 03/01/2024 (Rent)"]
}`

func TestBuildSummaryParsesPlainJSON(t *testing.T) {
	ai := &fakeCompleter{reply: summaryJSON}
	svc := NewSummaryService(ai)

	summary, err := svc.BuildSummary(context.Background(), nil)
	require.NoError(t, err)

	assert.False(t, summary.Fallback())
	assert.Equal(t, "Spending outpaced income this week.", summary.ShortSummary)
	require.Len(t, summary.TopCategories, 1)
	assert.Equal(t, "Groceries", summary.TopCategories[0].Category)
	assert.Equal(t, float64(1200), summary.TopCategories[0].TotalAmount)
}

func TestBuildSummaryStripsCodeFences(t *testing.T) {
	wrapped := "```json\n" + summaryJSON + "\n```"

	ai := &fakeCompleter{reply: wrapped}
	svc := NewSummaryService(ai)

	fromWrapped, err := svc.BuildSummary(context.Background(), nil)
	require.NoError(t, err)

	svc.AI = &fakeCompleter{reply: summaryJSON}
	fromPlain, err := svc.BuildSummary(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, fromPlain, fromWrapped, "fenced output must parse identically to the unwrapped JSON")
}

func TestBuildSummaryStripsBareFences(t *testing.T) {
	wrapped := "```\n" + summaryJSON + "\n```"
	svc := NewSummaryService(&fakeCompleter{reply: wrapped})

	summary, err := svc.BuildSummary(context.Background(), nil)
	require.NoError(t, err)
	assert.False(t, summary.Fallback())
	assert.Equal(t, "Spending outpaced income this week.", summary.ShortSummary)
}

func TestBuildSummaryFallbackOnProse(t *testing.T) {
	prose := "Here is an overview of your spending habits this month."
	svc := NewSummaryService(&fakeCompleter{reply: prose})

	summary, err := svc.BuildSummary(context.Background(), nil)
	require.NoError(t, err, "unparsable model output is not an error")

	assert.True(t, summary.Fallback())
	assert.Equal(t, prose, summary.Raw)
	assert.Equal(t, "Could not parse JSON", summary.Error)
}

func TestBuildSummaryPromptContainsTransactions(t *testing.T) {
	ai := &fakeCompleter{reply: summaryJSON}
	svc := NewSummaryService(ai)

	transactions := []models.Transaction{
		{
			TransactionType: models.TransactionTypeExpense,
			Amount:          decimal.NewFromInt(8000),
			CategoryName:    "Rent",
			TransactionTime: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	_, err := svc.BuildSummary(context.Background(), transactions)
	require.NoError(t, err)

	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "EXPENSE of ₹8000 on 03/01/2024 (Rent)")
	assert.Contains(t, ai.prompts[0], `"flagged_items"`)
	assert.Contains(t, ai.prompts[0], "amount > 5000")
}

func TestBuildSummaryProviderError(t *testing.T) {
	svc := NewSummaryService(&fakeCompleter{err: errors.New("connection refused")})

	summary, err := svc.BuildSummary(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, summary)
}

func TestStripCodeFences(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"{\"a\":1}":               `{"a":1}`,
		"  {\"a\":1}  ":           `{"a":1}`,
	}

	for input, want := range cases {
		assert.Equal(t, want, StripCodeFences(input))
	}
}
