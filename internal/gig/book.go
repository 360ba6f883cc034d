package gig

import (
	"fmt"
	"time"

	"github.com/javiermolinar/gigbook/internal/dateutil"
)

// EditResult is returned by a successful EditGig.
type EditResult struct {
	Status EditStatus `json:"status"`
	Gig    Gig        `json:"gig"`
}

// Message returns the confirmation shown to the user.
func (r EditResult) Message() string {
	if r.Status == EditUnchanged {
		return MsgUnchanged
	}
	return MsgEdited
}

// Book is one session's view of its gigs. Every operation either applies
// fully or leaves the store untouched.
type Book struct {
	store *Store
	clock dateutil.Clock
}

// NewBook wraps store. A nil clock means the system clock.
func NewBook(store *Store, clock dateutil.Clock) *Book {
	if store == nil {
		store = NewStore()
	}
	if clock == nil {
		clock = dateutil.SystemClock{}
	}
	return &Book{store: store, clock: clock}
}

// Store returns the underlying store, for persistence.
func (b *Book) Store() *Store {
	return b.store
}

// Now returns the reference time.
func (b *Book) Now() time.Time {
	return b.clock.Now()
}

// CreateGig validates in and books a new gig.
// Returns a *ValidationError or ErrConflict on failure.
func (b *Book) CreateGig(in Input) (Gig, error) {
	g, err := New(in)
	if err != nil {
		return Gig{}, err
	}
	if err := b.store.Insert(g); err != nil {
		return Gig{}, err
	}
	return g, nil
}

// EditGig replaces the gig identified by id with the submitted values.
// Returns a *ValidationError, ErrGigNotFound or ErrConflict on failure.
func (b *Book) EditGig(id string, in Input) (EditResult, error) {
	g, err := fromInput(in)
	if err != nil {
		return EditResult{}, err
	}
	status, err := b.store.Replace(id, g)
	if err != nil {
		return EditResult{}, err
	}
	g.ID = id
	if status == EditUnchanged {
		g, _ = b.store.Find(id)
	}
	return EditResult{Status: status, Gig: g}, nil
}

// Reclassify moves overdue gigs to past using the book's clock.
func (b *Book) Reclassify() int {
	return b.store.Reclassify(b.clock.Now())
}

// ListUpcoming reclassifies and returns upcoming gigs in chronological order.
func (b *Book) ListUpcoming() []Gig {
	b.Reclassify()
	return b.store.Upcoming()
}

// ListPast reclassifies and returns past gigs in the order they became past.
func (b *Book) ListPast() []Gig {
	b.Reclassify()
	return b.store.Past()
}

// IncomeSummary returns past and future income after reclassifying.
func (b *Book) IncomeSummary() Income {
	b.Reclassify()
	return Income{
		Past:   TotalIncome(b.store.Past()),
		Future: TotalIncome(b.store.Upcoming()),
	}
}

// FindByDateTime returns the gig booked at the canonical date and time.
func (b *Book) FindByDateTime(date, clock string) (Gig, bool) {
	return b.store.FindByDateTime(date, clock)
}

// Gig returns the gig with the given ID.
func (b *Book) Gig(id string) (Gig, bool) {
	return b.store.Find(id)
}

// FormFor returns the edit form fields of a stored gig.
func (b *Book) FormFor(id string) (Input, error) {
	g, ok := b.store.Find(id)
	if !ok {
		return Input{}, fmt.Errorf("%w: %s", ErrGigNotFound, id)
	}
	return InputFrom(g), nil
}

// NewGigForm returns form fields pre-filled with the current date and time.
func (b *Book) NewGigForm() Input {
	date, clock := dateutil.CurrentDateTime(b.clock.Now())
	year, partial, regular, meridiem := dateutil.UnpackDateTime(date, clock)
	return Input{
		Year:     year,
		Date:     partial,
		Time:     regular,
		Meridiem: meridiem,
	}
}

// YearChoices returns the years offered by the date picker.
func (b *Book) YearChoices() []int {
	return dateutil.YearChoices(b.clock.Now())
}
