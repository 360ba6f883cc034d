package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/shopspring/decimal"

	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
)

// Fixed column widths of a gig row, excluding the name.
const (
	dateColWidth   = 15 // "Wed May  1 2024"
	timeColWidth   = 8  // "12:30 pm"
	incomeColWidth = 10
	minNameWidth   = 12
)

// displayDate renders a canonical date as "Wed May  1 2024".
func displayDate(date string) string {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return date
	}
	return d.Format("Mon Jan _2 2006")
}

// displayTime renders a canonical time on the 12-hour clock.
func displayTime(clock string) string {
	regular, meridiem := dateutil.ConvertToRegularTime(clock)
	return regular + " " + meridiem
}

func displayIncome(income string) string {
	if strings.TrimSpace(income) == "" {
		return "-"
	}
	return income
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// nameWidth fits the name column to the terminal.
func nameWidth(width int) int {
	w := width - dateColWidth - timeColWidth - incomeColWidth - 12
	if w < minNameWidth {
		return minNameWidth
	}
	return w
}

func truncate(s string, width int) string {
	return ansi.Truncate(s, width, "…")
}

// printGig writes the full details of one gig.
func printGig(w io.Writer, g gig.Gig) {
	fmt.Fprintf(w, "  %s  %s  %s\n", displayDate(g.Date), displayTime(g.Time), g.Name)
	fmt.Fprintf(w, "  income: %s  %s\n", displayIncome(g.Income), formatMuted("id: "+g.ID))
}

// printGigTable writes one row per gig. style colors the date column.
func printGigTable(w io.Writer, gigs []gig.Gig, width int, style func(string) string) {
	nw := nameWidth(width)
	for _, g := range gigs {
		fmt.Fprintf(w, "  %s  %-*s  %-*s  %*s  %s\n",
			style(fmt.Sprintf("%-*s", dateColWidth, displayDate(g.Date))),
			timeColWidth, displayTime(g.Time),
			nw, truncate(g.Name, nw),
			incomeColWidth, truncate(displayIncome(g.Income), incomeColWidth),
			formatMuted(g.ID),
		)
	}
}

func printIncome(w io.Writer, income gig.Income) {
	fmt.Fprintf(w, "%s  past %s  upcoming %s  total %s\n",
		formatHeader("Income:"),
		formatIncome(formatMoney(income.Past)),
		formatIncome(formatMoney(income.Future)),
		formatIncome(formatMoney(income.Total())),
	)
}
