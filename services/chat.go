package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spendsmart/spendsmart-api/config"
	"github.com/spendsmart/spendsmart-api/models"
)

// ============================================================================
// CHAT RELAY
// One pipeline, two entry modes: Respond returns the full reply for the REST
// endpoint; Stream replays it in word chunks over a live connection.
// ============================================================================

// ErrInvalidChatRequest is returned before any I/O when the request is
// missing its user id or message.
var ErrInvalidChatRequest = errors.New("userId and message are required")

// TransactionFetcher is what the relay needs from the store.
type TransactionFetcher interface {
	FetchRecent(ctx context.Context, userID, limit int) ([]models.Transaction, error)
}

type ChatRelay struct {
	store     TransactionFetcher
	summaries SummaryBuilder
	ai        Completer
	cfg       config.ChatConfig
}

func NewChatRelay(store TransactionFetcher, summaries SummaryBuilder, ai Completer, cfg config.ChatConfig) *ChatRelay {
	return &ChatRelay{
		store:     store,
		summaries: summaries,
		ai:        ai,
		cfg:       cfg,
	}
}

// Respond runs the full pipeline: recent transactions → structured summary →
// composed prompt → completion. A summary failure degrades to a nil summary;
// a completion failure is the caller's to report (ErrOverloaded stays
// distinguishable through the error chain).
func (r *ChatRelay) Respond(ctx context.Context, userID int, message string) (string, error) {
	if userID <= 0 || strings.TrimSpace(message) == "" {
		return "", ErrInvalidChatRequest
	}

	transactions, err := r.store.FetchRecent(ctx, userID, r.cfg.HistoryLimit)
	if err != nil {
		return "", fmt.Errorf("failed to load transaction history: %w", err)
	}

	summary, err := r.summaries.BuildSummary(ctx, transactions)
	if err != nil {
		log.Printf("Summary generation failed: %v", err)
		summary = nil
	}

	prompt := ComposePrompt(SystemPersona, summary, transactions, message)

	reply, err := r.ai.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	return reply, nil
}

// Stream runs the same pipeline, then replays the finished reply through send
// in fixed-size word chunks with a small delay between them, ending with a
// done event carrying the full text. A send failure (closed connection) stops
// the emission immediately.
func (r *ChatRelay) Stream(ctx context.Context, userID int, message string, send func(event interface{}) error) error {
	reply, err := r.Respond(ctx, userID, message)
	if err != nil {
		return err
	}

	for _, chunk := range ChunkWords(reply, r.cfg.ChunkSize) {
		if err := send(models.ChatChunkEvent{Event: models.ChatEventChunk, Chunk: chunk}); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.cfg.ChunkDelay):
		}
	}

	return send(models.ChatDoneEvent{Event: models.ChatEventDone, Full: reply})
}

// ChunkWords splits text on whitespace and regroups the words into chunks of
// at most size words each.
func ChunkWords(text string, size int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || size <= 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+size-1)/size)
	for i := 0; i < len(words); i += size {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
