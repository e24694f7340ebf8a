package handlers

import (
	"net/http"

	"github.com/shindesiddhant-415/Honeypot/internal/store"
)

// StatsResponse summarizes the engagement state of the service.
type StatsResponse struct {
	Sessions store.Stats `json:"sessions"`
}

// Stats returns session counters (authenticated).
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.sessions.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("stats collection failed")
		h.Error(w, http.StatusInternalServerError, "failed to collect stats")
		return
	}

	h.JSON(w, http.StatusOK, StatsResponse{Sessions: st})
}
