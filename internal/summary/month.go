// Package summary provides per-month income summaries of a gig book.
package summary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
)

// Month aggregates the gigs played or booked in one calendar month.
type Month struct {
	Start  time.Time       `json:"start"`
	Label  string          `json:"label"` // "2024-05"
	Gigs   int             `json:"gigs"`
	Past   decimal.Decimal `json:"past"`
	Future decimal.Decimal `json:"future"`
}

// Total returns the month's past plus future income.
func (m Month) Total() decimal.Decimal {
	return m.Past.Add(m.Future)
}

// Summary is the income breakdown of a whole book.
type Summary struct {
	Months []Month    `json:"months"`
	Income gig.Income `json:"income"`
}

// Busiest returns the month with the most gigs, earliest first on ties.
func (s *Summary) Busiest() (Month, bool) {
	if len(s.Months) == 0 {
		return Month{}, false
	}
	best := s.Months[0]
	for _, m := range s.Months[1:] {
		if m.Gigs > best.Gigs {
			best = m
		}
	}
	return best, true
}

// Build groups upcoming and past gigs by month, oldest month first.
// Gigs with an unreadable date are left out of the months but still count
// towards the totals.
func Build(upcoming, past []gig.Gig) *Summary {
	months := make(map[string]*Month)
	add := func(g gig.Gig, isPast bool) {
		d, err := dateutil.ParseDate(g.Date)
		if err != nil {
			return
		}
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		label := start.Format("2006-01")
		m, ok := months[label]
		if !ok {
			m = &Month{Start: start, Label: label}
			months[label] = m
		}
		m.Gigs++
		if isPast {
			m.Past = m.Past.Add(gig.ParseIncome(g.Income))
		} else {
			m.Future = m.Future.Add(gig.ParseIncome(g.Income))
		}
	}
	for _, g := range past {
		add(g, true)
	}
	for _, g := range upcoming {
		add(g, false)
	}

	s := &Summary{
		Months: make([]Month, 0, len(months)),
		Income: gig.Income{
			Past:   gig.TotalIncome(past),
			Future: gig.TotalIncome(upcoming),
		},
	}
	for _, m := range months {
		s.Months = append(s.Months, *m)
	}
	sort.Slice(s.Months, func(i, j int) bool {
		return s.Months[i].Start.Before(s.Months[j].Start)
	})
	return s
}

// ForBook reclassifies the book and summarises it.
func ForBook(b *gig.Book) *Summary {
	return Build(b.ListUpcoming(), b.ListPast())
}
