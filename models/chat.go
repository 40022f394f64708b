package models

// ============================================================================
// CHAT & AI SUMMARY MODELS
// ============================================================================

// ChatRequest is the unit of work for the chat relay. Over the REST endpoint
// the user id comes from the auth middleware; over the websocket channel the
// client sends it with the message.
type ChatRequest struct {
	UserID  int    `json:"userId"`
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type CategoryTotal struct {
	Category    string  `json:"category"`
	TotalAmount float64 `json:"total_amount"`
}

// FinancialSummary is the structured view the model is asked to produce.
// When its output cannot be parsed as JSON, Raw carries the original text and
// Error is set — the summary is still usable as prompt context either way.
type FinancialSummary struct {
	ShortSummary   string          `json:"short_summary,omitempty"`
	TopCategories  []CategoryTotal `json:"top_categories,omitempty"`
	ActionableTips []string        `json:"actionable_tips,omitempty"`
	FlaggedItems   []string        `json:"flagged_items,omitempty"`

	Raw   string `json:"raw,omitempty"`
	Error string `json:"error,omitempty"`
}

// Fallback reports whether the summary is the unparsed-output fallback.
func (s *FinancialSummary) Fallback() bool {
	return s != nil && s.Error != ""
}

// ============================================================================
// WEBSOCKET CHAT EVENTS
// ============================================================================

const (
	ChatEventChunk = "ai_chunk"
	ChatEventDone  = "ai_done"
	ChatEventError = "chat_error"
)

type ChatChunkEvent struct {
	Event string `json:"event"`
	Chunk string `json:"chunk"`
}

type ChatDoneEvent struct {
	Event string `json:"event"`
	Full  string `json:"full"`
}

type ChatErrorEvent struct {
	Event string `json:"event"`
	Error string `json:"error"`
}
