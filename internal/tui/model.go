package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gigbook/internal/gig"
	"github.com/javiermolinar/gigbook/internal/session"
	"github.com/javiermolinar/gigbook/internal/tui/commands"
	"github.com/javiermolinar/gigbook/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeForm        // Creating or editing a gig
)

// Tab selects which list is shown.
type Tab int

const (
	TabUpcoming Tab = iota
	TabPast
)

func (t Tab) String() string {
	if t == TabPast {
		return "Past"
	}
	return "Upcoming"
}

// Default terminal size until the first WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	sessions  *session.Manager
	sessionID string

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	mode     Mode
	tab      Tab
	loading  bool
	upcoming []gig.Gig
	past     []gig.Gig
	income   gig.Income

	// Components
	table table.Model
	form  gigForm

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg string
	statusErr bool

	// Error state
	err error
}

// New creates a new TUI model for one session.
func New(sessions *session.Manager, sessionID, themeName string) Model {
	t, err := theme.Load(themeName)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	styles := NewStyles(t)

	tbl := table.New(
		table.WithFocused(true),
		table.WithStyles(styles.Table),
	)

	m := Model{
		sessions:  sessions,
		sessionID: sessionID,
		theme:     t,
		styles:    styles,
		mode:      ModeNormal,
		tab:       TabUpcoming,
		loading:   true,
		table:     tbl,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.resize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadGigs(m.sessions, m.sessionID)
}

// Run starts the TUI.
func Run(sessions *session.Manager, sessionID, themeName string) error {
	p := tea.NewProgram(New(sessions, sessionID, themeName), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// visible returns the gigs of the current tab.
func (m Model) visible() []gig.Gig {
	if m.tab == TabPast {
		return m.past
	}
	return m.upcoming
}

// Selected returns the gig under the cursor.
func (m Model) Selected() (gig.Gig, bool) {
	gigs := m.visible()
	i := m.table.Cursor()
	if i < 0 || i >= len(gigs) {
		return gig.Gig{}, false
	}
	return gigs[i], true
}

// resize fits the table to the terminal.
func (m *Model) resize() {
	m.table.SetColumns(columns(m.width))
	m.table.SetHeight(max(m.height-chromeLines, 3))
	m.table.SetWidth(m.width)
	m.refreshRows()
}

// refreshRows rebuilds table rows for the current tab.
func (m *Model) refreshRows() {
	gigs := m.visible()
	nw := nameColWidth(m.width)
	rows := make([]table.Row, 0, len(gigs))
	for _, g := range gigs {
		rows = append(rows, gigRow(g, nw))
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusErr = isErr
}
