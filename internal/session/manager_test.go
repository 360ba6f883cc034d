package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
)

// countingRepo counts saves and stamps them with its own clock.
type countingRepo struct {
	*gig.MemoryRepository
	saves int
	now   func() time.Time
	saved map[string]time.Time
}

func (r *countingRepo) SaveSession(ctx context.Context, id string, s *gig.Store) error {
	r.saves++
	r.saved[id] = r.now()
	return r.MemoryRepository.SaveSession(ctx, id, s)
}

func (r *countingRepo) IdleSessions(_ context.Context, cutoff time.Time) ([]string, error) {
	var ids []string
	for id, at := range r.saved {
		if at.Before(cutoff) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *countingRepo) DeleteSession(ctx context.Context, id string) error {
	delete(r.saved, id)
	return r.MemoryRepository.DeleteSession(ctx, id)
}

func newTestManager(now time.Time) (*Manager, *countingRepo) {
	repo := &countingRepo{
		MemoryRepository: gig.NewMemoryRepository(),
		now:              time.Now,
		saved:            make(map[string]time.Time),
	}
	return NewManager(repo, dateutil.FixedClock{T: now}, nil), repo
}

func bookAt(t *testing.T, m *Manager, id, date string) {
	t.Helper()
	err := m.Do(context.Background(), id, func(b *gig.Book) error {
		_, err := b.CreateGig(gig.Input{Year: "2024", Date: date, Time: "8", Meridiem: "pm"})
		return err
	})
	if err != nil {
		t.Fatalf("booking in %s: %v", id, err)
	}
}

func TestDo_PersistsChanges(t *testing.T) {
	m, repo := newTestManager(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	err := m.Do(ctx, "s1", func(b *gig.Book) error {
		_, err := b.CreateGig(gig.Input{Name: "Gala", Year: "2024", Date: "5-1", Time: "8", Meridiem: "pm"})
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store, _ := repo.LoadSession(ctx, "s1")
	if store.Len() != 1 {
		t.Errorf("got %d gigs, want 1", store.Len())
	}
}

func TestDo_ErrorSkipsSave(t *testing.T) {
	m, repo := newTestManager(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	err := m.Do(ctx, "s1", func(b *gig.Book) error {
		_, err := b.CreateGig(gig.Input{Year: "2024", Date: "5-1", Time: "8"})
		return err
	})
	var verr *gig.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("got error %v, want *gig.ValidationError", err)
	}
	if repo.saves != 0 {
		t.Errorf("got %d saves, want 0", repo.saves)
	}
}

func TestDo_SerialisesSameSession(t *testing.T) {
	m, repo := newTestManager(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(d int) {
			defer wg.Done()
			err := m.Do(ctx, "shared", func(b *gig.Book) error {
				_, err := b.CreateGig(gig.Input{Year: "2024", Date: fmt.Sprintf("6-%d", d), Time: "9", Meridiem: "pm"})
				return err
			})
			if err != nil {
				t.Errorf("Do: %v", err)
			}
		}(i)
	}
	wg.Wait()

	store, _ := repo.LoadSession(ctx, "shared")
	if store.Len() != 10 {
		t.Errorf("got %d gigs, want 10 (lost update)", store.Len())
	}
}

func TestSweep(t *testing.T) {
	ctx := context.Background()
	repo := gig.NewMemoryRepository()
	early := NewManager(repo, dateutil.FixedClock{T: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)}, nil)

	for _, id := range []string{"a", "b"} {
		err := early.Do(ctx, id, func(b *gig.Book) error {
			_, err := b.CreateGig(gig.Input{Year: "2024", Date: "5-1", Time: "8", Meridiem: "pm"})
			return err
		})
		if err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	later := NewManager(repo, dateutil.FixedClock{T: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}, nil)
	moved, err := later.Sweep(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved != 2 {
		t.Errorf("got %d moved, want 2", moved)
	}

	moved, _ = later.Sweep(ctx)
	if moved != 0 {
		t.Errorf("second sweep moved %d, want 0", moved)
	}

	store, _ := repo.LoadSession(ctx, "a")
	if len(store.Past()) != 1 {
		t.Errorf("got %d past gigs, want 1", len(store.Past()))
	}
}

func TestDo_EmptySessionNotSaved(t *testing.T) {
	m, repo := newTestManager(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	err := m.Do(ctx, "visitor", func(b *gig.Book) error {
		b.ListUpcoming()
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.saves != 0 {
		t.Errorf("got %d saves, want 0", repo.saves)
	}
	if ids, _ := repo.ListSessions(ctx); len(ids) != 0 {
		t.Errorf("got sessions %v, want none", ids)
	}
}

func TestDo_ReleasesLocks(t *testing.T) {
	m, _ := newTestManager(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = m.Do(ctx, fmt.Sprintf("s%d", n%4), func(*gig.Book) error { return nil })
		}(i)
	}
	wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.locks) != 0 {
		t.Errorf("got %d session locks left, want 0", len(m.locks))
	}
}

func TestSweep_ExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	m.SetSessionTTL(time.Hour)

	start := time.Now()
	repo.now = func() time.Time { return start }
	bookAt(t, m, "stale", "5-1")
	bookAt(t, m, "fresh", "5-1")

	repo.now = func() time.Time { return start.Add(2 * time.Hour) }
	bookAt(t, m, "fresh", "5-2")
	m.now = func() time.Time { return start.Add(150 * time.Minute) }

	if _, err := m.Sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	ids, _ := repo.ListSessions(ctx)
	if len(ids) != 1 || ids[0] != "fresh" {
		t.Errorf("got sessions %v, want [fresh]", ids)
	}
	if _, ok := m.locks["stale"]; ok {
		t.Error("lock of expired session kept")
	}
}

func TestSweep_NoTTLKeepsSessions(t *testing.T) {
	ctx := context.Background()
	m, repo := newTestManager(time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	bookAt(t, m, "s1", "5-1")

	m.now = func() time.Time { return time.Now().AddDate(10, 0, 0) }
	if _, err := m.Sweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if ids, _ := repo.ListSessions(ctx); len(ids) != 1 {
		t.Errorf("got sessions %v, want [s1]", ids)
	}
}

func TestNewID(t *testing.T) {
	if NewID() == NewID() {
		t.Error("expected distinct session IDs")
	}
}
