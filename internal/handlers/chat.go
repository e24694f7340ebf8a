package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shindesiddhant-415/Honeypot/internal/engage"
	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

// ChatRequest is the inbound message envelope. conversationHistory is
// accepted for wire compatibility but never merged: the server-side
// store is authoritative for session state.
type ChatRequest struct {
	SessionID           string           `json:"sessionId"`
	Message             models.Message   `json:"message"`
	ConversationHistory []models.Message `json:"conversationHistory,omitempty"`
	Metadata            map[string]any   `json:"metadata,omitempty"`
}

// ChatResponse carries the persona's reply.
type ChatResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

// Chat handles one inbound conversation message (authenticated).
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		h.Error(w, http.StatusBadRequest, "sessionId is required")
		return
	}
	if strings.TrimSpace(req.Message.Text) == "" {
		h.Error(w, http.StatusBadRequest, "message.text is required")
		return
	}

	replyText, err := h.engine.HandleMessage(r.Context(), engage.Inbound{
		SessionID: req.SessionID,
		Message:   req.Message,
		Metadata:  req.Metadata,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", req.SessionID).Msg("message handling failed")
		h.Error(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	h.JSON(w, http.StatusOK, ChatResponse{Status: "success", Reply: replyText})
}
