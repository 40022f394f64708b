package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spendsmart/spendsmart-api/middleware"
	"github.com/spendsmart/spendsmart-api/models"
	"github.com/spendsmart/spendsmart-api/services"
)

// ChatHandler serves the request/response entry mode of the chat relay.
type ChatHandler struct {
	Relay     *services.ChatRelay
	Store     *services.TransactionStore
	Summaries services.SummaryBuilder
	History   int
}

func NewChatHandler(relay *services.ChatRelay, store *services.TransactionStore, summaries services.SummaryBuilder, historyLimit int) *ChatHandler {
	return &ChatHandler{
		Relay:     relay,
		Store:     store,
		Summaries: summaries,
		History:   historyLimit,
	}
}

type chatRequestBody struct {
	Message string `json:"message"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req chatRequestBody
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}

	reply, err := h.Relay.Respond(c.Request.Context(), userID, req.Message)
	if errors.Is(err, services.ErrInvalidChatRequest) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
		return
	}
	if errors.Is(err, services.ErrOverloaded) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Gemini is overloaded. Please try again later."})
		return
	}
	if err != nil {
		log.Printf("Chat REST error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply})
}

// Summary returns the structured financial summary for the caller's recent
// transactions — the same one the relay feeds into the chat prompt.
func (h *ChatHandler) Summary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	transactions, err := h.Store.FetchRecent(c.Request.Context(), userID, h.History)
	if err != nil {
		log.Printf("Error fetching transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	summary, err := h.Summaries.BuildSummary(c.Request.Context(), transactions)
	if errors.Is(err, services.ErrOverloaded) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Gemini is overloaded. Please try again later."})
		return
	}
	if err != nil {
		log.Printf("Summary generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}
