package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/shindesiddhant-415/Honeypot/internal/engage"
	"github.com/shindesiddhant-415/Honeypot/internal/store"
	"github.com/shindesiddhant-415/Honeypot/internal/voice"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	engine   *engage.Engine
	sessions store.SessionStore
	archive  store.ReportArchive // nil when archiving is disabled
	voice    *voice.Client       // nil when no sibling service configured
	logger   zerolog.Logger
}

// NewHandler creates a new Handler with the given dependencies.
func NewHandler(engine *engage.Engine, sessions store.SessionStore, archive store.ReportArchive, voiceClient *voice.Client, logger zerolog.Logger) *Handler {
	return &Handler{
		engine:   engine,
		sessions: sessions,
		archive:  archive,
		voice:    voiceClient,
		logger:   logger,
	}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
