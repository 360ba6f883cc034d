// Package dateutil provides the date and time conversions used by gigbook:
// the reference clock, canonical date parsing, and the codec between
// human-entered fragments and canonical date/time strings.
package dateutil

import (
	"errors"
	"time"
)

// Canonical layouts.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Validation errors.
var (
	ErrInvalidDateFormat = errors.New("date must be in YYYY-MM-DD format")
)

// Clock supplies the reference "now" used to split past and upcoming gigs.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the local wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant. Used by tests and by callers
// that want to render a view "as of" a given moment.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.T
}

// CurrentDateTime returns now as canonical date ("YYYY-MM-DD") and
// canonical time ("HH:MM").
func CurrentDateTime(now time.Time) (date, clock string) {
	return now.Format(DateLayout), now.Format(TimeLayout)
}

// ParseDate parses a canonical YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

// YearChoices returns the years offered by the date pickers: last year,
// this year and the two following years.
func YearChoices(now time.Time) []int {
	y := now.Year()
	return []int{y - 1, y, y + 1, y + 2}
}
