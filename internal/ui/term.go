package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Upcoming gigs: bold cyan
	colorUpcoming = color.New(color.FgCyan, color.Bold)

	// Past gigs: dim
	colorPast = color.New(color.FgWhite, color.Faint)

	// Money: green
	colorIncome = color.New(color.FgGreen)

	// Confirmations
	colorSuccess = color.New(color.FgGreen, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatUpcoming(s string) string {
	return colorUpcoming.Sprint(s)
}

func formatPast(s string) string {
	return colorPast.Sprint(s)
}

func formatIncome(s string) string {
	return colorIncome.Sprint(s)
}

func formatSuccess(s string) string {
	return colorSuccess.Sprint(s)
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
