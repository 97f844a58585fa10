package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tada/internal/fetch"
)

// ------- styling (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	chipStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// chip renders the fetch status as a coloured label.
func chip(s fetch.Status) string {
	st := chipStyle
	switch s {
	case fetch.Idle:
		st = st.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
	case fetch.Loading:
		st = st.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("214"))
	case fetch.Success:
		st = st.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("42"))
	case fetch.Error:
		st = st.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9"))
	}
	return st.Render(s.Label())
}
