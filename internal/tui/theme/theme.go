// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is used for empty or unknown theme names.
const DefaultName = "mocha"

var names = []string{"mocha", "macchiato", "frappe", "latte", "light"}

// Theme holds the colors of one TUI theme as "#rrggbb" strings.
type Theme struct {
	Name        string `toml:"name"`
	Bg          string `toml:"bg"`
	BgHighlight string `toml:"bg_highlight"` // tabs, form panel
	BgSelection string `toml:"bg_selection"` // cursor row
	Fg          string `toml:"fg"`
	FgMuted     string `toml:"fg_muted"` // help, labels
	Accent      string `toml:"accent"`   // title, active tab, borders
	Upcoming    string `toml:"upcoming"`
	Past        string `toml:"past"`
	Income      string `toml:"income"`
	Warning     string `toml:"warning"` // rejections, double bookings
}

// Load reads a theme from the embedded files. Empty and unknown names load
// DefaultName.
func Load(name string) (*Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !IsAvailable(name) {
		name = DefaultName
	}

	data, err := embeddedThemes.ReadFile(path.Join("embedded", name+".toml"))
	if err != nil {
		return nil, fmt.Errorf("reading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	if t.Name == "" {
		t.Name = name
	}
	t.applyDefaults()
	return &t, nil
}

// applyDefaults fills optional colors from the base ones.
func (t *Theme) applyDefaults() {
	t.BgHighlight = firstSet(t.BgHighlight, t.Bg)
	t.BgSelection = firstSet(t.BgSelection, t.BgHighlight)
	t.FgMuted = firstSet(t.FgMuted, t.Fg)
	t.Upcoming = firstSet(t.Upcoming, t.Accent)
	t.Past = firstSet(t.Past, t.FgMuted)
	t.Income = firstSet(t.Income, t.Accent)
	t.Warning = firstSet(t.Warning, t.Accent)
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns the names of the embedded themes.
func Available() []string {
	return slices.Clone(names)
}

// IsAvailable reports whether name is an embedded theme, ignoring case.
func IsAvailable(name string) bool {
	return slices.Contains(names, strings.ToLower(name))
}
