package store

import (
	"context"

	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

// SessionStore is the sole owner of conversation state. The in-memory
// store is the default; the Redis store backs multi-instance
// deployments. Distinct ids never interfere; same-id concurrency is
// last-write-wins, which is acceptable for one conversation per
// counterparty.
type SessionStore interface {
	// GetOrCreate returns a working copy of the session for id,
	// creating an empty one (scam_detected=false, reported=false) if
	// absent. Metadata is recorded only at creation. Mutations to the
	// returned session become visible only through Save.
	GetOrCreate(ctx context.Context, id string, metadata map[string]any) (*models.Session, error)
	// Get returns a copy of the session for id, or nil if it does not
	// exist.
	Get(ctx context.Context, id string) (*models.Session, error)
	// Save publishes the session's current state.
	Save(ctx context.Context, sess *models.Session) error
	// Stats summarizes the store for the operator endpoints.
	Stats(ctx context.Context) (Stats, error)
	Ping(ctx context.Context) error
	Close() error
}

// Stats is a point-in-time summary of the session store.
type Stats struct {
	Sessions     int64 `json:"sessions"`
	ScamSessions int64 `json:"scamSessions"`
	Reported     int64 `json:"reported"`
	Messages     int64 `json:"messages"`
}

// ReportArchive keeps a local audit copy of every dispatched report.
// Writes are best-effort; a failed archive write never blocks or fails
// report delivery.
type ReportArchive interface {
	SaveReport(ctx context.Context, payload *models.ReportPayload) error
	Ping(ctx context.Context) error
	Close()
}
