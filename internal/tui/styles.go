// Package tui provides the terminal user interface for gigbook.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/gigbook/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	Title       lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	Table    table.Styles
	Empty    lipgloss.Style
	Upcoming lipgloss.Style
	Past     lipgloss.Style

	Income      lipgloss.Style
	IncomeLabel lipgloss.Style

	Status  lipgloss.Style
	Warning lipgloss.Style
	Help    lipgloss.Style

	// Form
	FormPanel        lipgloss.Style
	FormTitle        lipgloss.Style
	FormLabel        lipgloss.Style
	FormLabelFocused lipgloss.Style
	FormInput        lipgloss.Style
	FormPlaceholder  lipgloss.Style
	FormCursor       lipgloss.Style
	FormError        lipgloss.Style
}

// NewStyles creates styles from the given theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	s := &Styles{palette: p}

	s.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent).
		Padding(0, 1)

	s.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Padding(0, 1)

	s.TabInactive = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.BgHighlight).
		Padding(0, 1)

	s.Table = table.DefaultStyles()
	s.Table.Header = s.Table.Header.
		Bold(true).
		Foreground(p.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(p.FgMuted).
		BorderBottom(true)
	s.Table.Cell = s.Table.Cell.Foreground(p.Fg)
	s.Table.Selected = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnSelection).
		Background(p.BgSelection)

	s.Empty = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Italic(true).
		Padding(1, 2)

	s.Upcoming = lipgloss.NewStyle().Foreground(p.Upcoming)
	s.Past = lipgloss.NewStyle().Foreground(p.Past)

	s.Income = lipgloss.NewStyle().Bold(true).Foreground(p.Income)
	s.IncomeLabel = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.Status = lipgloss.NewStyle().Foreground(p.Upcoming)
	s.Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning).
		Padding(0, 1)
	s.Help = lipgloss.NewStyle().Foreground(p.FgMuted)

	s.FormPanel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)
	s.FormTitle = lipgloss.NewStyle().Bold(true).Foreground(p.Accent)
	s.FormLabel = lipgloss.NewStyle().Foreground(p.FgMuted).Width(formLabelWidth)
	s.FormLabelFocused = lipgloss.NewStyle().Bold(true).Foreground(p.Accent).Width(formLabelWidth)
	s.FormInput = lipgloss.NewStyle().Foreground(p.Fg)
	s.FormPlaceholder = lipgloss.NewStyle().Foreground(p.FgMuted)
	s.FormCursor = lipgloss.NewStyle().Foreground(p.Accent)
	s.FormError = lipgloss.NewStyle().Bold(true).Foreground(p.Warning)

	return s
}

// RowStyle returns the accent style of the given tab.
func (s *Styles) RowStyle(tab Tab) lipgloss.Style {
	if tab == TabPast {
		return s.Past
	}
	return s.Upcoming
}
