// Package report delivers the final session report to the external
// evaluation endpoint. Delivery is fire-and-forget: it never blocks
// the chat reply and its failures never reach the chat caller.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/shindesiddhant-415/Honeypot/internal/intel"
	"github.com/shindesiddhant-415/Honeypot/internal/metrics"
	"github.com/shindesiddhant-415/Honeypot/internal/models"
	"github.com/shindesiddhant-415/Honeypot/internal/store"
)

// AgentNotes accompanies every report.
const AgentNotes = "Rule-based agent detected scam keywords and engaged."

// Dispatcher submits reports to the evaluation callback and archives a
// local copy. The archive may be nil.
type Dispatcher struct {
	callbackURL string
	client      *http.Client
	archive     store.ReportArchive
	logger      zerolog.Logger
}

// NewDispatcher creates a dispatcher with a bounded delivery timeout.
func NewDispatcher(callbackURL string, timeout time.Duration, archive store.ReportArchive, logger zerolog.Logger) *Dispatcher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Dispatcher{
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: timeout},
		archive:     archive,
		logger:      logger,
	}
}

// Dispatch schedules delivery of the session's report and returns
// immediately. The session must be a snapshot the caller no longer
// mutates.
func (d *Dispatcher) Dispatch(sess *models.Session) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.client.Timeout)
		defer cancel()

		if err := d.Deliver(ctx, sess); err != nil {
			// Swallowed on purpose: reporting is best-effort and the
			// chat reply has already been returned.
			metrics.ReportsDispatched.WithLabelValues("failed").Inc()
			d.logger.Warn().
				Err(err).
				Str("session_id", sess.ID).
				Msg("report delivery failed")
			return
		}
		metrics.ReportsDispatched.WithLabelValues("delivered").Inc()
		d.logger.Info().
			Str("session_id", sess.ID).
			Int("messages", len(sess.History)).
			Msg("report delivered")
	}()
}

// Deliver builds the report payload, archives it, and POSTs it to the
// callback endpoint. Exposed separately so tests can run it
// synchronously.
func (d *Dispatcher) Deliver(ctx context.Context, sess *models.Session) error {
	payload := d.Build(sess)

	if d.archive != nil {
		if err := d.archive.SaveReport(ctx, payload); err != nil {
			metrics.ArchiveWrites.WithLabelValues("failed").Inc()
			d.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("report archive write failed")
		} else {
			metrics.ArchiveWrites.WithLabelValues("ok").Inc()
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.callbackURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	metrics.CallbackLatency.Observe(time.Since(start).Seconds())

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("callback returned status %d", resp.StatusCode)
	}
	return nil
}

// Build assembles the report payload from the session's current
// history. Intelligence is recomputed here, never carried forward.
func (d *Dispatcher) Build(sess *models.Session) *models.ReportPayload {
	return &models.ReportPayload{
		SessionID:              sess.ID,
		ScamDetected:           sess.ScamDetected,
		TotalMessagesExchanged: len(sess.History),
		ExtractedIntelligence:  intel.Extract(sess.History),
		AgentNotes:             AgentNotes,
	}
}
