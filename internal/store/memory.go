package store

import (
	"context"
	"sync"

	"github.com/shindesiddhant-415/Honeypot/internal/metrics"
	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

// MemoryStore keeps sessions in a process-lifetime map. No eviction,
// no TTL: sessions live until the process exits.
//
// Installed sessions are never mutated in place: GetOrCreate and Get
// hand out clones, and Save publishes the caller's mutated copy under
// the lock. Readers therefore never observe a session mid-mutation,
// even across different endpoints.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
	}
}

// GetOrCreate returns a working copy of the session for id, creating
// it if absent. Mutations become visible only through Save.
func (s *MemoryStore) GetOrCreate(_ context.Context, id string, metadata map[string]any) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess.Clone(), nil
	}

	sess := models.NewSession(id, metadata)
	s.sessions[id] = sess
	metrics.SessionsCreated.Inc()
	return sess.Clone(), nil
}

// Get returns a copy of the session for id, or nil if unknown.
func (s *MemoryStore) Get(_ context.Context, id string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	return sess.Clone(), nil
}

// Save installs the session under its id, replacing the previous
// copy. Last write wins for concurrent same-id access.
func (s *MemoryStore) Save(_ context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
	return nil
}

// Stats summarizes the current session map.
func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	for _, sess := range s.sessions {
		st.Sessions++
		st.Messages += int64(len(sess.History))
		if sess.ScamDetected {
			st.ScamSessions++
		}
		if sess.Reported {
			st.Reported++
		}
	}
	return st, nil
}

// Ping always succeeds for the in-memory store.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
