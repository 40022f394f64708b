package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spendsmart/spendsmart-api/models"
)

// ============================================================================
// SUMMARY BUILDER
// Turns a transaction list into a structured FinancialSummary via the model.
// ============================================================================

const summaryPromptTemplate = `You are SpendSmart — a concise, privacy-conscious personal finance assistant for Indian users.

Given the user's transaction list below, produce a JSON object with:
- "short_summary": 1-2 sentence summary of balance/trend,
- "top_categories": array of { "category": string, "total_amount": number },
- "actionable_tips": array of 2-4 short strings,
- "flagged_items": any unusual/large transactions (amount > 5000) as array of strings.

Transactions:
%s

Return only valid JSON (no markdown, no explanation, no code fences).`

// SummaryBuilder is what the chat relay needs from this service.
type SummaryBuilder interface {
	BuildSummary(ctx context.Context, transactions []models.Transaction) (*models.FinancialSummary, error)
}

type SummaryService struct {
	AI Completer
}

func NewSummaryService(ai Completer) *SummaryService {
	return &SummaryService{AI: ai}
}

// BuildSummary asks the model for the four-field JSON summary. Output that is
// not valid JSON is not an error: the caller gets the raw text back in a
// fallback summary. Only provider failures surface as errors.
func (s *SummaryService) BuildSummary(ctx context.Context, transactions []models.Transaction) (*models.FinancialSummary, error) {
	lines := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		lines = append(lines, FormatTransactionLine(tx))
	}

	prompt := fmt.Sprintf(summaryPromptTemplate, strings.Join(lines, "\n"))

	text, err := s.AI.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("summary generation failed: %w", err)
	}

	output := StripCodeFences(text)

	var summary models.FinancialSummary
	if err := json.Unmarshal([]byte(output), &summary); err != nil {
		return &models.FinancialSummary{
			Raw:   text,
			Error: "Could not parse JSON",
		}, nil
	}

	return &summary, nil
}

// StripCodeFences removes a markdown code-fence wrapper (with an optional
// "json" language tag) that models sometimes add despite instructions.
func StripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	content = strings.Trim(content, "`")
	return content
}
