package tui

import (
	"charm.land/lipgloss/v2"
)

// Styles holds the lipgloss styles of every part of the screen.
type Styles struct {
	Title       lipgloss.Style
	Root        lipgloss.Style
	Message     lipgloss.Style
	File        lipgloss.Style
	FilePath    lipgloss.Style
	Key         lipgloss.Style
	Value       lipgloss.Style
	Active      lipgloss.Style
	Inactive    lipgloss.Style
	Selected    lipgloss.Style
	Empty       lipgloss.Style
	Status      lipgloss.Style
	StatusError lipgloss.Style
	HelpLine    lipgloss.Style
}

// DefaultStyles uses the 16 ANSI colours so the terminal theme decides the
// actual palette.
func DefaultStyles() Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Cyan).Bold(true),
		Root:        lipgloss.NewStyle().Faint(true),
		Message:     lipgloss.NewStyle().Foreground(lipgloss.Yellow),
		File:        lipgloss.NewStyle().Foreground(lipgloss.Cyan).Bold(true),
		FilePath:    lipgloss.NewStyle().Faint(true),
		Key:         lipgloss.NewStyle().Foreground(lipgloss.Magenta),
		Value:       lipgloss.NewStyle(),
		Active:      lipgloss.NewStyle().Foreground(lipgloss.Green),
		Inactive:    lipgloss.NewStyle().Faint(true),
		Selected:    lipgloss.NewStyle().Reverse(true),
		Empty:       lipgloss.NewStyle().Faint(true).Italic(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Green),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Red).Bold(true),
		HelpLine:    lipgloss.NewStyle().Faint(true),
	}
}
