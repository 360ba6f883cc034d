package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Lines taken by header, table header and footer.
const chromeLines = 8

const (
	helpNormal = "n new  e edit  y copy  tab switch  r reload  q quit"
	helpForm   = "tab next  shift+tab prev  space am/pm  enter save  esc cancel"
)

// View renders the TUI.
func (m Model) View() string {
	var sections []string
	sections = append(sections, m.renderHeader(), "")

	if m.mode == ModeForm {
		sections = append(sections, m.form.view(m.styles))
	} else {
		sections = append(sections, m.renderList())
	}

	sections = append(sections, "", m.renderIncome(), m.renderStatus(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("gigbook")
	tabs := make([]string, 0, 2)
	for _, tab := range []Tab{TabUpcoming, TabPast} {
		n := len(m.upcoming)
		if tab == TabPast {
			n = len(m.past)
		}
		label := fmt.Sprintf("%s (%d)", tab, n)
		if tab == m.tab {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, title, " ", strings.Join(tabs, " "))
	return ansi.Truncate(line, m.width, "")
}

func (m Model) renderList() string {
	if m.loading {
		return m.styles.Empty.Render("Loading gigs…")
	}
	if len(m.visible()) == 0 {
		return m.styles.Empty.Render(fmt.Sprintf("No %s gigs. Press n to book one.", strings.ToLower(m.tab.String())))
	}
	return m.table.View()
}

func (m Model) renderIncome() string {
	s := m.styles
	line := strings.Join([]string{
		s.IncomeLabel.Render(" Past ") + s.Income.Render(m.income.Past.StringFixed(2)),
		s.IncomeLabel.Render("Upcoming ") + s.Income.Render(m.income.Future.StringFixed(2)),
		s.IncomeLabel.Render("Total ") + s.Income.Render(m.income.Total().StringFixed(2)),
	}, "   ")
	return ansi.Truncate(line, m.width, "")
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusErr {
		return ansi.Truncate(m.styles.Warning.Render(m.statusMsg), m.width, "…")
	}
	return ansi.Truncate(m.styles.Status.Render(" "+m.statusMsg), m.width, "…")
}

func (m Model) renderHelp() string {
	help := helpNormal
	if m.mode == ModeForm {
		help = helpForm
	}
	return ansi.Truncate(m.styles.Help.Render(" "+help), m.width, "…")
}
