package models

import "time"

// Session is one tracked conversation with a single counterparty.
// The session store owns all Session values; handlers and the engine
// reach them only through the store.
type Session struct {
	ID           string         `json:"id"`
	History      []Message      `json:"history"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	ScamDetected bool           `json:"scam_detected"`
	Reported     bool           `json:"reported"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewSession returns an empty session for the given id.
func NewSession(id string, metadata map[string]any) *Session {
	return &Session{
		ID:        id,
		History:   []Message{},
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}
}

// Append adds a message to the conversation history. History is
// append-only; nothing is ever removed or rewritten.
func (s *Session) Append(msg Message) {
	s.History = append(s.History, msg)
}

// Clone returns a deep copy, used to hand a stable snapshot to the
// report dispatcher while the live session keeps accepting messages.
func (s *Session) Clone() *Session {
	cp := *s
	cp.History = make([]Message, len(s.History))
	copy(cp.History, s.History)
	if s.Metadata != nil {
		cp.Metadata = make(map[string]any, len(s.Metadata))
		for k, v := range s.Metadata {
			cp.Metadata[k] = v
		}
	}
	return &cp
}
