package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shindesiddhant-415/Honeypot/internal/voice"
)

// VoiceDetection forwards a classification request to the sibling
// voice service (authenticated). The capability is external; this
// handler only validates the request shape and relays the result.
func (h *Handler) VoiceDetection(w http.ResponseWriter, r *http.Request) {
	if h.voice == nil {
		h.Error(w, http.StatusServiceUnavailable, "voice detection service not configured")
		return
	}

	var req voice.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if !voice.LanguageSupported(req.Language) {
		h.Error(w, http.StatusBadRequest, "unsupported language")
		return
	}
	if strings.ToLower(req.AudioFormat) != "mp3" {
		h.Error(w, http.StatusBadRequest, "only mp3 format is supported")
		return
	}
	audio, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil || len(audio) == 0 {
		h.Error(w, http.StatusBadRequest, "invalid base64 audio")
		return
	}

	resp, err := h.voice.Classify(r.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("voice service call failed")
		h.Error(w, http.StatusBadGateway, "voice detection service unavailable")
		return
	}

	h.JSON(w, http.StatusOK, resp)
}
