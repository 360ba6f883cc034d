package gig

import (
	"context"
	"sync"
	"time"
)

// Repository persists the gig collections of each session.
type Repository interface {
	// LoadSession returns the session's store, or an empty store if the
	// session has never been saved.
	LoadSession(ctx context.Context, sessionID string) (*Store, error)

	// SaveSession replaces the session's persisted gigs with the store's.
	SaveSession(ctx context.Context, sessionID string, store *Store) error

	// ListSessions returns the IDs of all persisted sessions.
	ListSessions(ctx context.Context) ([]string, error)

	// IdleSessions returns the IDs of sessions last saved before cutoff.
	IdleSessions(ctx context.Context, cutoff time.Time) ([]string, error)

	// DeleteSession drops a session and its gigs.
	DeleteSession(ctx context.Context, sessionID string) error

	// Close releases any resources held by the repository.
	Close() error
}

// MemoryRepository keeps sessions in process memory.
type MemoryRepository struct {
	mu       sync.Mutex
	sessions map[string]snapshot
	now      func() time.Time
}

type snapshot struct {
	upcoming []Gig
	past     []Gig
	saved    time.Time
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]snapshot), now: time.Now}
}

// LoadSession returns a copy of the stored session.
func (r *MemoryRepository) LoadSession(_ context.Context, sessionID string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap, ok := r.sessions[sessionID]
	if !ok {
		return NewStore(), nil
	}
	return RestoreStore(snap.upcoming, snap.past), nil
}

// SaveSession stores a copy of the store.
func (r *MemoryRepository) SaveSession(_ context.Context, sessionID string, store *Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = snapshot{upcoming: store.Upcoming(), past: store.Past(), saved: r.now()}
	return nil
}

// ListSessions returns the stored session IDs.
func (r *MemoryRepository) ListSessions(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids, nil
}

// IdleSessions returns the sessions saved before cutoff.
func (r *MemoryRepository) IdleSessions(_ context.Context, cutoff time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for id, snap := range r.sessions {
		if snap.saved.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// DeleteSession removes a session.
func (r *MemoryRepository) DeleteSession(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

// Close is a no-op.
func (r *MemoryRepository) Close() error {
	return nil
}
