// Package session binds gig books to session IDs: it loads a session's
// store, hands it to the caller as a gig.Book and saves it back.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
)

// NewID returns a fresh session ID.
func NewID() string {
	return uuid.NewString()
}

// Manager runs operations against per-session books. Operations on the same
// session are serialised; different sessions run independently.
type Manager struct {
	repo  gig.Repository
	clock dateutil.Clock
	log   *slog.Logger

	// Sessions idle for longer than ttl are dropped by Sweep. Idle time is
	// measured on the wall clock, not the booking clock.
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock is dropped from Manager.locks once nobody holds or waits on it.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager creates a Manager. A nil clock means the system clock and a nil
// logger discards output.
func NewManager(repo gig.Repository, clock dateutil.Clock, log *slog.Logger) *Manager {
	if clock == nil {
		clock = dateutil.SystemClock{}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{
		repo:  repo,
		clock: clock,
		log:   log,
		now:   time.Now,
		locks: make(map[string]*sessionLock),
	}
}

// SetSessionTTL makes Sweep delete sessions not saved within ttl. Zero keeps
// sessions forever.
func (m *Manager) SetSessionTTL(ttl time.Duration) {
	m.ttl = ttl
}

// Do loads the session (empty on first use), runs fn on its book and saves
// the result. If fn returns an error nothing is saved and the error is
// returned as is. A session that is still empty is not saved.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(*gig.Book) error) error {
	unlock := m.lock(sessionID)
	defer unlock()

	store, err := m.repo.LoadSession(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	wasEmpty := store.Len() == 0
	book := gig.NewBook(store, m.clock)
	if err := fn(book); err != nil {
		return err
	}
	if wasEmpty && book.Store().Len() == 0 {
		return nil
	}

	if err := m.repo.SaveSession(ctx, sessionID, book.Store()); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Sweep deletes expired sessions, then reclassifies every remaining session
// and returns how many gigs moved to past.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	expired, err := m.expire(ctx)
	if err != nil {
		return 0, err
	}

	ids, err := m.repo.ListSessions(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing sessions: %w", err)
	}

	total := 0
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		err := m.Do(ctx, id, func(b *gig.Book) error {
			total += b.Reclassify()
			return nil
		})
		if err != nil {
			return total, fmt.Errorf("sweeping session %s: %w", id, err)
		}
	}

	m.log.Info("reclassify sweep finished", "sessions", len(ids), "moved", total, "expired", expired)
	return total, nil
}

// expire deletes the sessions idle for longer than the TTL.
func (m *Manager) expire(ctx context.Context) (int, error) {
	if m.ttl <= 0 {
		return 0, nil
	}
	ids, err := m.repo.IdleSessions(ctx, m.now().Add(-m.ttl))
	if err != nil {
		return 0, fmt.Errorf("listing idle sessions: %w", err)
	}

	for i, id := range ids {
		unlock := m.lock(id)
		err := m.repo.DeleteSession(ctx, id)
		unlock()
		if err != nil {
			return i, fmt.Errorf("expiring session %s: %w", id, err)
		}
		m.log.Debug("session expired", "session", id)
	}
	return len(ids), nil
}

func (m *Manager) lock(sessionID string) func() {
	m.mu.Lock()
	l, ok := m.locks[sessionID]
	if !ok {
		l = &sessionLock{}
		m.locks[sessionID] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, sessionID)
		}
		m.mu.Unlock()
	}
}
