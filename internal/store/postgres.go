package store

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

// PostgresArchive persists dispatched reports to PostgreSQL, for
// deployments where the audit trail has to outlive the host.
type PostgresArchive struct {
	pool *pgxpool.Pool
}

// NewPostgresArchive connects a pool and initializes the schema.
func NewPostgresArchive(ctx context.Context, databaseURL string) (*PostgresArchive, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	a := &PostgresArchive{pool: pool}
	if err := a.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

func (a *PostgresArchive) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id UUID PRIMARY KEY,
		session_id TEXT NOT NULL,
		scam_detected BOOLEAN NOT NULL,
		total_messages INTEGER NOT NULL,
		payload JSONB NOT NULL,
		created_at TIMESTAMPTZ DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_reports_session_id ON reports(session_id);
	`

	_, err := a.pool.Exec(ctx, schema)
	return err
}

// SaveReport stores the full report payload as JSONB.
func (a *PostgresArchive) SaveReport(ctx context.Context, payload *models.ReportPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = a.pool.Exec(ctx, `
		INSERT INTO reports (id, session_id, scam_detected, total_messages, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.Must(uuid.NewV7()), payload.SessionID, payload.ScamDetected,
		payload.TotalMessagesExchanged, data)
	return err
}

// Ping checks the database connection.
func (a *PostgresArchive) Ping(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// Close closes the connection pool.
func (a *PostgresArchive) Close() {
	a.pool.Close()
}
