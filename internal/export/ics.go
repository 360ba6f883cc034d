// Package export renders gig books as iCalendar and YAML documents.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
)

// DefaultGigLength is the event length used for every gig, since bookings
// carry only a start time.
const DefaultGigLength = 2 * time.Hour

const productID = "-//gigbook//gig calendar//EN"

// ICSOptions configures calendar export.
type ICSOptions struct {
	Location *time.Location // nil means time.Local
	Length   time.Duration  // zero means DefaultGigLength
	Stamp    time.Time      // DTSTAMP; zero means time.Now()
}

// StartTime returns the instant a gig starts in loc. A stored "24:00"
// rolls over to midnight of the following day.
func StartTime(g gig.Gig, loc *time.Location) (time.Time, error) {
	d, err := dateutil.ParseDate(g.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("gig %s: %w", g.ID, err)
	}
	hh, mm, ok := strings.Cut(g.Time, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("gig %s: invalid time %q", g.ID, g.Time)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 24 {
		return time.Time{}, fmt.Errorf("gig %s: invalid time %q", g.ID, g.Time)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("gig %s: invalid time %q", g.ID, g.Time)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc), nil
}

// Calendar builds a calendar with one event per gig. Gigs whose date or
// time cannot be read are skipped and returned in skipped.
func Calendar(gigs []gig.Gig, opts ICSOptions) (cal *ical.Calendar, skipped []gig.Gig) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	length := opts.Length
	if length <= 0 {
		length = DefaultGigLength
	}
	stamp := opts.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	cal = ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, g := range gigs {
		start, err := StartTime(g, loc)
		if err != nil {
			skipped = append(skipped, g)
			continue
		}
		ev := cal.AddEvent(eventUID(g))
		ev.SetDtStampTime(stamp)
		ev.SetStartAt(start)
		ev.SetEndAt(start.Add(length))
		ev.SetSummary(summaryFor(g))
		if g.Income != "" {
			ev.SetDescription("Income: " + g.Income)
		}
	}
	return cal, skipped
}

// WriteICS serialises gigs as an iCalendar document.
func WriteICS(w io.Writer, gigs []gig.Gig, opts ICSOptions) (skipped []gig.Gig, err error) {
	cal, skipped := Calendar(gigs, opts)
	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return skipped, fmt.Errorf("writing calendar: %w", err)
	}
	return skipped, nil
}

func eventUID(g gig.Gig) string {
	id := g.ID
	if id == "" {
		id = strings.ReplaceAll(g.Slot(), "&", "T")
	}
	return id + "@gigbook"
}

func summaryFor(g gig.Gig) string {
	if strings.TrimSpace(g.Name) == "" {
		return "Gig"
	}
	return g.Name
}
