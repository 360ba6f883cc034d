package gig

import (
	"fmt"
	"slices"
	"time"

	"github.com/javiermolinar/gigbook/internal/dateutil"
)

// EditStatus is the outcome of a successful edit.
type EditStatus string

const (
	EditEdited    EditStatus = "edited"
	EditUnchanged EditStatus = "unchanged"
)

// Store holds one session's gigs split into upcoming and past.
//
// upcoming is sorted by Key after Reclassify. past is append-only and keeps
// the order in which gigs were moved.
type Store struct {
	upcoming []Gig
	past     []Gig
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		upcoming: make([]Gig, 0),
		past:     make([]Gig, 0),
	}
}

// RestoreStore rebuilds a Store from persisted collections.
func RestoreStore(upcoming, past []Gig) *Store {
	s := NewStore()
	s.upcoming = append(s.upcoming, upcoming...)
	s.past = append(s.past, past...)
	return s
}

// Upcoming returns a copy of the upcoming gigs.
func (s *Store) Upcoming() []Gig {
	return slices.Clone(s.upcoming)
}

// Past returns a copy of the past gigs.
func (s *Store) Past() []Gig {
	return slices.Clone(s.past)
}

// All returns upcoming and past gigs together.
func (s *Store) All() []Gig {
	all := make([]Gig, 0, len(s.upcoming)+len(s.past))
	all = append(all, s.upcoming...)
	return append(all, s.past...)
}

// Len returns the number of gigs in both groups.
func (s *Store) Len() int {
	return len(s.upcoming) + len(s.past)
}

// Insert appends g to the upcoming gigs.
// Returns ErrConflict if any gig, past or upcoming, has the same key.
func (s *Store) Insert(g Gig) error {
	if existing, ok := s.conflicting(g, ""); ok {
		return conflictError(g, existing)
	}
	s.upcoming = append(s.upcoming, g)
	return nil
}

// Replace swaps the gig identified by id for g. g keeps id and always lands
// in upcoming, whichever group the old gig was in.
//
// If g carries the same values as the stored gig nothing changes and
// EditUnchanged is returned. The conflict check ignores the gig being
// replaced. Returns ErrGigNotFound or ErrConflict without mutating.
func (s *Store) Replace(id string, g Gig) (EditStatus, error) {
	old, ok := s.Find(id)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrGigNotFound, id)
	}

	g.ID = id
	if old.SameBooking(g) {
		return EditUnchanged, nil
	}

	if existing, ok := s.conflicting(g, id); ok {
		return "", conflictError(g, existing)
	}

	s.upcoming = removeByID(s.upcoming, id)
	s.past = removeByID(s.past, id)
	s.upcoming = append(s.upcoming, g)
	return EditEdited, nil
}

// Reclassify sorts upcoming by key and moves every leading gig dated
// before today into past, in order. Returns the number of gigs moved.
// Calling it again with the same today moves nothing.
func (s *Store) Reclassify(today time.Time) int {
	todayKey := DateKey(today.Format(dateutil.DateLayout))
	s.sortUpcoming()

	moved := 0
	for len(s.upcoming) > 0 && DateKey(s.upcoming[0].Date) < todayKey {
		s.past = append(s.past, s.upcoming[0])
		s.upcoming = s.upcoming[1:]
		moved++
	}
	return moved
}

// Find returns the gig with the given ID from either group.
func (s *Store) Find(id string) (Gig, bool) {
	for _, g := range s.upcoming {
		if g.ID == id {
			return g, true
		}
	}
	for _, g := range s.past {
		if g.ID == id {
			return g, true
		}
	}
	return Gig{}, false
}

// FindByDateTime returns the gig booked at the canonical date and time.
func (s *Store) FindByDateTime(date, clock string) (Gig, bool) {
	probe := Gig{Date: date, Time: clock}
	return s.conflicting(probe, "")
}

// conflicting returns the first gig sharing g's key, skipping ignoreID.
func (s *Store) conflicting(g Gig, ignoreID string) (Gig, bool) {
	key := g.Key()
	for _, other := range s.All() {
		if ignoreID != "" && other.ID == ignoreID {
			continue
		}
		if other.Key() == key {
			return other, true
		}
	}
	return Gig{}, false
}

func (s *Store) sortUpcoming() {
	slices.SortStableFunc(s.upcoming, func(a, b Gig) int {
		ka, kb := a.Key(), b.Key()
		switch {
		case ka < kb:
			return -1
		case ka > kb:
			return 1
		default:
			return 0
		}
	})
}

func removeByID(gigs []Gig, id string) []Gig {
	return slices.DeleteFunc(gigs, func(g Gig) bool { return g.ID == id })
}

func conflictError(g, existing Gig) error {
	return fmt.Errorf("%w: %q (%s %s) conflicts with %q",
		ErrConflict, g.Name, g.Date, g.Time, existing.Name)
}
