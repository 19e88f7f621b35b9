// Package header provides the title bar component.
package header

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the header component.
type Props struct {
	Title    string
	Subtitle string
}

// Render renders the header component.
func Render(p Props) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Render("🥑 " + p.Title)
	if p.Subtitle == "" {
		return title
	}
	sub := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Render(p.Subtitle)
	return title + "\n" + sub
}
