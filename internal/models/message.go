package models

// Sender identifies which side of the conversation authored a message.
type Sender string

const (
	// SenderAdversary is the suspected scammer on the other end.
	SenderAdversary Sender = "scammer"
	// SenderAgent is the honeypot's own victim persona. The wire value
	// matches what the evaluation harness expects ("user" = our side).
	SenderAgent Sender = "user"
)

// Message is a single conversation turn. Messages are immutable once
// appended to a session; ordering is arrival order.
type Message struct {
	ID        string `json:"id,omitempty"` // ULID, assigned on append
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // ISO-8601
}

// FromAgent reports whether the message was authored by our own persona.
func (m Message) FromAgent() bool {
	return m.Sender == SenderAgent
}
