package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/gigbook/internal/dateutil"
	"github.com/javiermolinar/gigbook/internal/gig"
)

// Fixed column widths; the name column takes the rest.
const (
	dateColWidth   = 15 // "Wed May  1 2024"
	timeColWidth   = 8  // "12:30 pm"
	incomeColWidth = 10
	minNameWidth   = 10
	columnPadding  = 8 // cell padding of four columns
)

func columns(width int) []table.Column {
	return []table.Column{
		{Title: "Date", Width: dateColWidth},
		{Title: "Time", Width: timeColWidth},
		{Title: "Name", Width: nameColWidth(width)},
		{Title: "Income", Width: incomeColWidth},
	}
}

func nameColWidth(width int) int {
	return max(width-dateColWidth-timeColWidth-incomeColWidth-columnPadding, minNameWidth)
}

func gigRow(g gig.Gig, nameWidth int) table.Row {
	return table.Row{
		displayDate(g.Date),
		displayTime(g.Time),
		ansi.Truncate(g.Name, nameWidth, "…"),
		fmt.Sprintf("%*s", incomeColWidth, displayIncome(g.Income)),
	}
}

func displayDate(date string) string {
	d, err := dateutil.ParseDate(date)
	if err != nil {
		return date
	}
	return d.Format("Mon Jan _2 2006")
}

func displayTime(clock string) string {
	regular, meridiem := dateutil.ConvertToRegularTime(clock)
	return regular + " " + meridiem
}

func displayIncome(income string) string {
	if strings.TrimSpace(income) == "" {
		return "-"
	}
	return gig.ParseIncome(income).StringFixed(2)
}

// clipboardText is the one-line summary copied for a gig.
func clipboardText(g gig.Gig) string {
	name := g.Name
	if name == "" {
		name = "Gig"
	}
	return fmt.Sprintf("%s, %s at %s, income %s", name, displayDate(g.Date), displayTime(g.Time), displayIncome(g.Income))
}
