package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/spendsmart/spendsmart-api/models"
	"github.com/spendsmart/spendsmart-api/services"
)

// ChatWSHandler serves the streaming entry mode of the chat relay. Each
// message on a session runs its own pipeline; sessions share nothing.
type ChatWSHandler struct {
	M     *melody.Melody
	Relay *services.ChatRelay
}

func NewChatWSHandler(relay *services.ChatRelay) *ChatWSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024 * 1024

	// Keep-alive configuration for cloud hosting
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	h := &ChatWSHandler{M: m, Relay: relay}

	m.HandleMessage(h.handleChatMessage)

	m.HandleDisconnect(func(s *melody.Session) {
		log.Printf("🔌 Chat client disconnected: %s", s.Request.RemoteAddr)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket error: %v", err)
	})

	return h
}

// HandleWS upgrades the request to a websocket connection.
func (h *ChatWSHandler) HandleWS(c *gin.Context) {
	if err := h.M.HandleRequest(c.Writer, c.Request); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// handleChatMessage runs the relay pipeline for one incoming message and
// streams the reply back in chunks. The pipeline runs off the session's read
// loop so a slow model call never blocks further reads.
func (h *ChatWSHandler) handleChatMessage(s *melody.Session, msg []byte) {
	var req models.ChatRequest
	if err := json.Unmarshal(msg, &req); err != nil || req.UserID <= 0 || req.Message == "" {
		h.sendError(s, "Invalid payload")
		return
	}

	go func() {
		send := func(event interface{}) error {
			if s.IsClosed() {
				return errors.New("session closed")
			}
			data, err := json.Marshal(event)
			if err != nil {
				return err
			}
			return s.Write(data)
		}

		err := h.Relay.Stream(context.Background(), req.UserID, req.Message, send)
		if err == nil {
			return
		}

		log.Printf("Socket chat handler error: %v", err)
		switch {
		case errors.Is(err, services.ErrInvalidChatRequest):
			h.sendError(s, "Invalid payload")
		case errors.Is(err, services.ErrOverloaded):
			h.sendError(s, "Gemini is overloaded. Please try again later.")
		default:
			h.sendError(s, "Server error")
		}
	}()
}

func (h *ChatWSHandler) sendError(s *melody.Session, message string) {
	if s.IsClosed() {
		return
	}
	data, err := json.Marshal(models.ChatErrorEvent{Event: models.ChatEventError, Error: message})
	if err != nil {
		return
	}
	if err := s.Write(data); err != nil {
		log.Printf("⚠️ Error writing to chat session: %v", err)
	}
}
