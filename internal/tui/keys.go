package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gigbook/internal/tui/commands"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.mode == ModeForm {
		return m.handleFormKeys(msg)
	}
	return m.handleNormalKeys(msg)
}

// handleNormalKeys handles keys while browsing the lists.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab", "shift+tab", "left", "right", "h", "l":
		m.tab = 1 - m.tab
		m.table.SetCursor(0)
		m.refreshRows()
		return m, nil

	case "n":
		return m, commands.NewGigForm(m.sessions, m.sessionID)

	case "e", "enter":
		g, ok := m.Selected()
		if !ok {
			return m, nil
		}
		return m, commands.EditGigForm(m.sessions, m.sessionID, g.ID)

	case "y":
		g, ok := m.Selected()
		if !ok {
			return m, nil
		}
		if err := copyToClipboard(clipboardText(g)); err != nil {
			m.setStatus("Copy failed: "+err.Error(), true)
			return m, commands.ClearStatusAfter(statusTimeout)
		}
		return m, func() tea.Msg {
			return commands.StatusMsgCmd{Msg: "Copied gig to clipboard"}
		}

	case "r":
		m.loading = true
		return m, commands.LoadGigs(m.sessions, m.sessionID)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleFormKeys handles keys while the gig form is open.
func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		return m, nil

	case "tab", "down":
		m.form = m.form.move(1)
		return m, nil

	case "shift+tab", "up":
		m.form = m.form.move(-1)
		return m, nil

	case " ":
		if m.form.focus == fieldMeridiem {
			m.form = m.form.toggleMeridiem()
			return m, nil
		}

	case "enter":
		m.form.message = ""
		return m, commands.SaveGig(m.sessions, m.sessionID, m.form.gigID, m.form.Input())
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}
