package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the style definitions for terminal output
type Styles struct {
	Title   lipgloss.Style
	Name    lipgloss.Style
	Dim     lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Name:    lipgloss.NewStyle().Bold(true),
		Dim:     lipgloss.NewStyle().Faint(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
	}
}

// PlainStyles returns styles that render text unchanged
func PlainStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:   plain,
		Name:    plain,
		Dim:     plain,
		Success: plain,
		Error:   plain,
		Warning: plain,
	}
}
