package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gigbook/internal/gig"
	"github.com/javiermolinar/gigbook/internal/tui/commands"
)

const formLabelWidth = 14

// Form fields, in focus order.
const (
	fieldName = iota
	fieldYear
	fieldDate
	fieldTime
	fieldMeridiem
	fieldIncome
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldName:     "Name",
	fieldYear:     "Year",
	fieldDate:     "Date",
	fieldTime:     "Time",
	fieldMeridiem: "am / pm",
	fieldIncome:   "Income",
}

var fieldPlaceholders = [fieldCount]string{
	fieldName:     "Venue or event",
	fieldYear:     "YYYY",
	fieldDate:     "M-D",
	fieldTime:     "8 or 8:30",
	fieldMeridiem: "am or pm",
	fieldIncome:   "250.00",
}

// gigForm edits the raw fields of a new or existing gig.
type gigForm struct {
	gigID   string
	years   []int
	inputs  [fieldCount]textinput.Model
	focus   int
	message string // last rejection, shown under the fields
}

func newGigForm(msg commands.FormMsg, styles *Styles) gigForm {
	values := [fieldCount]string{
		fieldName:     msg.Input.Name,
		fieldYear:     msg.Input.Year,
		fieldDate:     msg.Input.Date,
		fieldTime:     msg.Input.Time,
		fieldMeridiem: msg.Input.Meridiem,
		fieldIncome:   msg.Input.Income,
	}

	f := gigForm{gigID: msg.GigID, years: msg.Years}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = fieldPlaceholders[i]
		ti.Width = 32
		ti.CharLimit = 64
		ti.TextStyle = styles.FormInput
		ti.PlaceholderStyle = styles.FormPlaceholder
		ti.Cursor.Style = styles.FormCursor
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[fieldName].CharLimit = 256
	f.inputs[fieldYear].CharLimit = 4
	f.inputs[fieldDate].CharLimit = 5
	f.inputs[fieldTime].CharLimit = 5
	f.inputs[fieldMeridiem].CharLimit = 2
	f.inputs[fieldIncome].CharLimit = 16
	f.inputs[fieldName].Focus()
	return f
}

// Input returns the current field values.
func (f gigForm) Input() gig.Input {
	value := func(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }
	return gig.Input{
		Name:     value(fieldName),
		Year:     value(fieldYear),
		Date:     value(fieldDate),
		Time:     value(fieldTime),
		Meridiem: strings.ToLower(value(fieldMeridiem)),
		Income:   value(fieldIncome),
	}
}

func (f gigForm) editing() bool {
	return f.gigID != ""
}

func (f gigForm) title() string {
	if f.editing() {
		return "Edit gig"
	}
	return "New gig"
}

// move shifts focus by delta, wrapping around.
func (f gigForm) move(delta int) gigForm {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
	return f
}

// toggleMeridiem flips am and pm when the meridiem field is focused.
func (f gigForm) toggleMeridiem() gigForm {
	if f.inputs[fieldMeridiem].Value() == "pm" {
		f.inputs[fieldMeridiem].SetValue("am")
	} else {
		f.inputs[fieldMeridiem].SetValue("pm")
	}
	return f
}

func (f gigForm) update(msg tea.Msg) (gigForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f gigForm) view(s *Styles) string {
	var b strings.Builder
	b.WriteString(s.FormTitle.Render(f.title()))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		label := s.FormLabel
		if i == f.focus {
			label = s.FormLabelFocused
		}
		b.WriteString(label.Render(fieldLabels[i]))
		b.WriteString(in.View())
		if i == fieldYear && len(f.years) > 0 {
			b.WriteString(s.Help.Render(fmt.Sprintf("  %d-%d", f.years[0], f.years[len(f.years)-1])))
		}
		b.WriteString("\n")
	}
	if f.message != "" {
		b.WriteString("\n")
		b.WriteString(s.FormError.Render(f.message))
		b.WriteString("\n")
	}
	return s.FormPanel.Render(b.String())
}
