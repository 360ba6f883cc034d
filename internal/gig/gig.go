// Package gig defines the core domain types for gigbook.
package gig

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/javiermolinar/gigbook/internal/dateutil"
)

// Gig is a single booked performance.
type Gig struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Date   string `json:"date" yaml:"date"`     // "YYYY-MM-DD"
	Time   string `json:"time" yaml:"time"`     // "HH:MM", 24-hour
	Income string `json:"income" yaml:"income"` // as entered, see ParseIncome
}

// Input holds the raw form fields of a new or edited gig.
type Input struct {
	Name     string `json:"name" form:"name"`
	Year     string `json:"year" form:"year"`
	Date     string `json:"date" form:"date"` // "M-D" or "MM-DD"
	Time     string `json:"time" form:"time"` // "H", "H:MM" or "HH:MM"
	Meridiem string `json:"pm" form:"pm"`     // "am" or "pm"
	Income   string `json:"income" form:"income"`
}

// New validates in and builds a Gig with canonical date and time and a
// fresh ID.
func New(in Input) (Gig, error) {
	g, err := fromInput(in)
	if err != nil {
		return Gig{}, err
	}
	g.ID = uuid.NewString()
	return g, nil
}

func fromInput(in Input) (Gig, error) {
	in.Meridiem = normalizeMeridiem(in.Meridiem)
	if err := Validate(in); err != nil {
		return Gig{}, err
	}
	date, clock := dateutil.PackDateTime(in.Year, in.Date, in.Time, in.Meridiem)
	return Gig{
		Name:   in.Name,
		Date:   date,
		Time:   clock,
		Income: in.Income,
	}, nil
}

// InputFrom unpacks a stored gig into form fields.
func InputFrom(g Gig) Input {
	year, date, clock, meridiem := dateutil.UnpackDateTime(g.Date, g.Time)
	return Input{
		Name:     g.Name,
		Year:     year,
		Date:     date,
		Time:     clock,
		Meridiem: meridiem,
		Income:   g.Income,
	}
}

// Key is the chronological key of a gig: date digits followed by time
// digits, with the time left-padded to four digits. Two gigs with the same
// key are double-booked.
func (g Gig) Key() int64 {
	clock := digits(g.Time)
	if len(clock) == 3 {
		clock = "0" + clock
	}
	return parseKey(digits(g.Date) + clock)
}

// DateKey returns the digits of a canonical date as an integer, e.g.
// "2024-05-01" -> 20240501.
func DateKey(date string) int64 {
	return parseKey(digits(date))
}

// SameBooking reports whether g and other carry the same values, ignoring ID.
func (g Gig) SameBooking(other Gig) bool {
	return g.Name == other.Name &&
		g.Date == other.Date &&
		g.Time == other.Time &&
		g.Income == other.Income
}

// Slot returns the "date&time" form used to address a gig by its booking.
func (g Gig) Slot() string {
	return g.Date + "&" + g.Time
}

// ParseSlot splits a "date&time" slot.
func ParseSlot(s string) (date, clock string, ok bool) {
	date, clock, ok = strings.Cut(s, "&")
	if !ok || date == "" || clock == "" {
		return "", "", false
	}
	return date, clock, true
}

func digits(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c >= '0' && c <= '9' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func parseKey(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
