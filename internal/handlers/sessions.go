package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

// SessionResponse is the operator view of a live session.
type SessionResponse struct {
	ID           string           `json:"id"`
	ScamDetected bool             `json:"scamDetected"`
	Reported     bool             `json:"reported"`
	Messages     int              `json:"messages"`
	History      []models.Message `json:"history"`
}

// GetSession returns the current state of one session (authenticated).
// Debug/operator endpoint; the evaluation flow never reads it.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		h.Error(w, http.StatusInternalServerError, "session lookup failed")
		return
	}
	if sess == nil {
		h.Error(w, http.StatusNotFound, "session not found")
		return
	}

	h.JSON(w, http.StatusOK, SessionResponse{
		ID:           sess.ID,
		ScamDetected: sess.ScamDetected,
		Reported:     sess.Reported,
		Messages:     len(sess.History),
		History:      sess.History,
	})
}
