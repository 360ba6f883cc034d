// Package redisstore keeps session gig collections in Redis, one JSON
// document per session, expiring with the session.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/javiermolinar/gigbook/internal/gig"
)

// KeyPrefix namespaces session documents.
const KeyPrefix = "gigbook:session:"

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Connect opens a client and pings the server with a short timeout.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", opts.Addr, err)
	}
	return client, nil
}

// Store implements gig.Repository on Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New wraps client. A zero ttl keeps sessions until deleted.
func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

type document struct {
	Upcoming []gig.Gig `json:"upcoming"`
	Past     []gig.Gig `json:"past"`
}

func key(sessionID string) string {
	return KeyPrefix + sessionID
}

func encode(store *gig.Store) (string, error) {
	data, err := json.Marshal(document{Upcoming: store.Upcoming(), Past: store.Past()})
	if err != nil {
		return "", fmt.Errorf("encoding session: %w", err)
	}
	return string(data), nil
}

// LoadSession returns the stored session or an empty store.
func (s *Store) LoadSession(ctx context.Context, sessionID string) (*gig.Store, error) {
	data, err := s.client.Get(ctx, key(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return gig.NewStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", sessionID, err)
	}

	var doc document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", sessionID, err)
	}
	return gig.RestoreStore(doc.Upcoming, doc.Past), nil
}

// SaveSession writes the session document and refreshes its expiry.
func (s *Store) SaveSession(ctx context.Context, sessionID string, store *gig.Store) error {
	data, err := encode(store)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, key(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing session %s: %w", sessionID, err)
	}
	return nil
}

// ListSessions scans for session documents.
func (s *Store) ListSessions(ctx context.Context) ([]string, error) {
	var (
		ids    []string
		cursor uint64
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, KeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("scanning sessions: %w", err)
		}
		for _, k := range keys {
			ids = append(ids, strings.TrimPrefix(k, KeyPrefix))
		}
		if next == 0 {
			return ids, nil
		}
		cursor = next
	}
}

// IdleSessions returns nothing; session keys expire through their TTL.
func (s *Store) IdleSessions(context.Context, time.Time) ([]string, error) {
	return nil, nil
}

// DeleteSession removes the session document.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("deleting session %s: %w", sessionID, err)
	}
	return nil
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}
