// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gigbook/internal/gig"
	"github.com/javiermolinar/gigbook/internal/session"
)

// GigsLoadedMsg is sent when the book has been (re)loaded.
type GigsLoadedMsg struct {
	Upcoming []gig.Gig
	Past     []gig.Gig
	Income   gig.Income
}

// FormMsg is sent when form fields are ready to be edited. GigID is empty
// for a new gig.
type FormMsg struct {
	GigID string
	Input gig.Input
	Years []int
}

// GigSavedMsg is sent after a successful create or edit.
type GigSavedMsg struct {
	Message string
	Gig     gig.Gig
}

// RejectedMsg is sent when a create or edit is refused. Message is the
// text shown to the user; the form stays open.
type RejectedMsg struct {
	Message string
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// ClearStatusAfter returns a command that clears the status after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// LoadGigs reclassifies the book and returns both lists and the income.
func LoadGigs(sessions *session.Manager, sessionID string) tea.Cmd {
	return func() tea.Msg {
		var msg GigsLoadedMsg
		err := sessions.Do(context.Background(), sessionID, func(b *gig.Book) error {
			msg.Upcoming = b.ListUpcoming()
			msg.Past = b.ListPast()
			msg.Income = b.IncomeSummary()
			return nil
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return msg
	}
}

// NewGigForm loads the defaults of a new gig.
func NewGigForm(sessions *session.Manager, sessionID string) tea.Cmd {
	return func() tea.Msg {
		var msg FormMsg
		err := sessions.Do(context.Background(), sessionID, func(b *gig.Book) error {
			msg.Input = b.NewGigForm()
			msg.Years = b.YearChoices()
			return nil
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return msg
	}
}

// EditGigForm loads the stored fields of a gig.
func EditGigForm(sessions *session.Manager, sessionID, gigID string) tea.Cmd {
	return func() tea.Msg {
		msg := FormMsg{GigID: gigID}
		err := sessions.Do(context.Background(), sessionID, func(b *gig.Book) error {
			in, err := b.FormFor(gigID)
			if err != nil {
				return err
			}
			msg.Input = in
			msg.Years = b.YearChoices()
			return nil
		})
		if err != nil {
			return ErrMsg{Err: err}
		}
		return msg
	}
}

// SaveGig creates a gig, or edits gigID when it is not empty.
func SaveGig(sessions *session.Manager, sessionID, gigID string, in gig.Input) tea.Cmd {
	return func() tea.Msg {
		var saved GigSavedMsg
		err := sessions.Do(context.Background(), sessionID, func(b *gig.Book) error {
			if gigID == "" {
				g, err := b.CreateGig(in)
				if err != nil {
					return err
				}
				saved = GigSavedMsg{Message: gig.MsgCreated, Gig: g}
				return nil
			}
			res, err := b.EditGig(gigID, in)
			if err != nil {
				return err
			}
			saved = GigSavedMsg{Message: res.Message(), Gig: res.Gig}
			return nil
		})
		if err != nil {
			return rejection(err)
		}
		return saved
	}
}

func rejection(err error) tea.Msg {
	var verr *gig.ValidationError
	if errors.As(err, &verr) || errors.Is(err, gig.ErrConflict) || errors.Is(err, gig.ErrGigNotFound) {
		return RejectedMsg{Message: gig.Message(err)}
	}
	return ErrMsg{Err: err}
}
