package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// styles holds the output styling for status lines. On a non-TTY all
// styles render as plain text.
type styles struct {
	OK    lipgloss.Style
	Err   lipgloss.Style
	Muted lipgloss.Style
}

// newStyles picks colored or plain styles depending on whether stdout is
// a terminal.
func newStyles() styles {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		plain := lipgloss.NewStyle()
		return styles{OK: plain, Err: plain, Muted: plain}
	}
	return styles{
		OK:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Err:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
