// Package strutil provides additional string manipulation functions.
package strutil

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Limit truncates s to width terminal cells. Styled text keeps its escape
// sequences; a width of zero or less returns s unchanged.
func Limit(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// Repeat returns a string consisting of count copies of s.
// Unlike strings.Repeat, it returns an empty string if count is negative.
func Repeat(s string, count int) string {
	if count <= 0 {
		return ""
	}
	return strings.Repeat(s, count)
}
