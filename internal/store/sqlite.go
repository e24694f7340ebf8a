package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

// SQLiteArchive persists dispatched reports to a local SQLite file.
// This is the default archive backend: zero external dependencies,
// good enough to audit what was submitted to the evaluator.
type SQLiteArchive struct {
	db *sql.DB
}

// NewSQLiteArchive opens (and initializes) the archive database.
// If dbPath is empty, defaults to "./data/honeypot.db".
func NewSQLiteArchive(ctx context.Context, dbPath string) (*SQLiteArchive, error) {
	if dbPath == "" {
		dbPath = "./data/honeypot.db"
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	a := &SQLiteArchive{db: db}
	if err := a.initSchema(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *SQLiteArchive) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS reports (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		scam_detected INTEGER NOT NULL,
		total_messages INTEGER NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_reports_session_id ON reports(session_id);
	`

	_, err := a.db.ExecContext(ctx, schema)
	return err
}

// SaveReport stores the full report payload as JSON alongside the
// fields worth querying on.
func (a *SQLiteArchive) SaveReport(ctx context.Context, payload *models.ReportPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = a.db.ExecContext(ctx, `
		INSERT INTO reports (id, session_id, scam_detected, total_messages, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, uuid.Must(uuid.NewV7()).String(), payload.SessionID, payload.ScamDetected,
		payload.TotalMessagesExchanged, string(data), time.Now().UTC())
	return err
}

// Ping checks the database connection.
func (a *SQLiteArchive) Ping(ctx context.Context) error {
	return a.db.PingContext(ctx)
}

// Close closes the database connection.
func (a *SQLiteArchive) Close() {
	a.db.Close()
}
