package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gigbook/internal/tui/commands"
)

const statusTimeout = 3 * time.Second

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.GigsLoadedMsg:
		m.loading = false
		m.err = nil
		m.upcoming = msg.Upcoming
		m.past = msg.Past
		m.income = msg.Income
		m.refreshRows()
		return m, nil

	case commands.FormMsg:
		m.form = newGigForm(msg, m.styles)
		m.mode = ModeForm
		return m, nil

	case commands.GigSavedMsg:
		m.mode = ModeNormal
		m.tab = TabUpcoming
		m.setStatus(msg.Message, false)
		return m, tea.Batch(
			commands.LoadGigs(m.sessions, m.sessionID),
			commands.ClearStatusAfter(statusTimeout),
		)

	case commands.RejectedMsg:
		if m.mode == ModeForm {
			m.form.message = msg.Message
			return m, nil
		}
		m.setStatus(msg.Message, true)
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ErrMsg:
		m.loading = false
		m.err = msg.Err
		m.setStatus(msg.Err.Error(), true)
		return m, nil

	case commands.StatusMsgCmd:
		m.setStatus(msg.Msg, false)
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ClearStatusMsg:
		m.statusMsg = ""
		m.statusErr = false
		return m, nil
	}

	// Cursor blinks and other component messages.
	if m.mode == ModeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}
