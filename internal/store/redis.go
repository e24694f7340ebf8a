package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shindesiddhant-415/Honeypot/internal/metrics"
	"github.com/shindesiddhant-415/Honeypot/internal/models"
)

const sessionKeyPrefix = "session:"

// RedisStore backs the session store with Redis so sessions survive a
// restart and can be shared across instances. Sessions carry a TTL,
// which doubles as the eviction policy the in-memory store lacks.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, ttl: ttl}, nil
}

// Client exposes the underlying connection for the rate limiter.
func (s *RedisStore) Client() *redis.Client {
	return s.client
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

// GetOrCreate loads the session for id, creating and persisting an
// empty one if absent.
func (s *RedisStore) GetOrCreate(ctx context.Context, id string, metadata map[string]any) (*models.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess != nil {
		return sess, nil
	}

	sess = models.NewSession(id, metadata)
	if err := s.Save(ctx, sess); err != nil {
		return nil, err
	}
	metrics.SessionsCreated.Inc()
	return sess, nil
}

// Get returns the session for id, or nil if unknown.
func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return &sess, nil
}

// Save writes the whole session back. Last write wins for concurrent
// same-id access.
func (s *RedisStore) Save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err()
}

// Stats scans the session keyspace. Intended for the low-traffic
// operator endpoint, not the hot path.
func (s *RedisStore) Stats(ctx context.Context) (Stats, error) {
	var st Stats

	iter := s.client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue // expired between scan and get
		}
		var sess models.Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		st.Sessions++
		st.Messages += int64(len(sess.History))
		if sess.ScamDetected {
			st.ScamSessions++
		}
		if sess.Reported {
			st.Reported++
		}
	}
	return st, iter.Err()
}

// Ping checks the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
