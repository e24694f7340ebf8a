// Package engage holds the per-session state machine: ingest an
// inbound message, classify it, craft the persona's reply, and decide
// when a session is worth reporting.
package engage

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/shindesiddhant-415/Honeypot/internal/detect"
	"github.com/shindesiddhant-415/Honeypot/internal/metrics"
	"github.com/shindesiddhant-415/Honeypot/internal/models"
	"github.com/shindesiddhant-415/Honeypot/internal/reply"
	"github.com/shindesiddhant-415/Honeypot/internal/store"
)

// DefaultReportThreshold is the history length at which a session is
// handed to the reporter.
const DefaultReportThreshold = 4

// Reporter receives a session snapshot for asynchronous reporting.
type Reporter interface {
	Dispatch(sess *models.Session)
}

// Inbound is one message arriving for a session.
type Inbound struct {
	SessionID string
	Message   models.Message
	Metadata  map[string]any
}

// Engine orchestrates detection, engagement, and report hand-off.
type Engine struct {
	store     store.SessionStore
	strategy  *reply.Strategist
	reporter  Reporter
	threshold int
	logger    zerolog.Logger
}

// NewEngine wires the engagement engine. A threshold <= 0 falls back
// to DefaultReportThreshold.
func NewEngine(sessions store.SessionStore, strategy *reply.Strategist, reporter Reporter, threshold int, logger zerolog.Logger) *Engine {
	if threshold <= 0 {
		threshold = DefaultReportThreshold
	}
	return &Engine{
		store:     sessions,
		strategy:  strategy,
		reporter:  reporter,
		threshold: threshold,
		logger:    logger,
	}
}

// HandleMessage runs one state-machine step and returns the reply to
// send back. Per message: exactly one inbound append, at most one
// agent append, at most one report dispatch.
func (e *Engine) HandleMessage(ctx context.Context, in Inbound) (string, error) {
	sess, err := e.store.GetOrCreate(ctx, in.SessionID, in.Metadata)
	if err != nil {
		return "", err
	}

	msg := in.Message
	if msg.ID == "" {
		msg.ID = ulid.Make().String()
	}
	if msg.Sender == "" {
		msg.Sender = models.SenderAdversary
	}
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	sess.Append(msg)

	// The detector runs on every message but the flag only grows:
	// once a session is engaged, it stays engaged.
	verdict := "benign"
	if detect.Scam(msg.Text) {
		verdict = "scam"
		if !sess.ScamDetected {
			sess.ScamDetected = true
			metrics.ScamSessionsDetected.Inc()
			e.logger.Info().
				Str("session_id", sess.ID).
				Msg("scam detected, engaging")
		}
	}
	metrics.MessagesIngested.WithLabelValues(verdict).Inc()

	if !sess.ScamDetected {
		if err := e.store.Save(ctx, sess); err != nil {
			return "", err
		}
		return reply.Greeting, nil
	}

	replyText := e.strategy.NextReply(msg.Text, len(sess.History))
	sess.Append(models.Message{
		ID:        ulid.Make().String(),
		Sender:    models.SenderAgent,
		Text:      replyText,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})

	// Report once per session, decided synchronously so the guard is
	// checked exactly one time even if the threshold keeps holding.
	// The flag is persisted before the dispatch fires: a failed save
	// must not leave a dispatched-but-unflagged session behind.
	shouldReport := len(sess.History) >= e.threshold && !sess.Reported
	if shouldReport {
		sess.Reported = true
	}

	if err := e.store.Save(ctx, sess); err != nil {
		return "", err
	}

	if shouldReport {
		e.reporter.Dispatch(sess.Clone())
	}
	return replyText, nil
}
