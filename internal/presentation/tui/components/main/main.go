// Package mainview renders the content pane: a section title, the form, progress
// or plan body, and an optional dimmed note under it.
package mainview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	noteStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Props defines the content pane.
type Props struct {
	Width  int
	Height int
	Title  string
	Body   string
	Note   string
}

// Render renders the content pane, skipping empty parts.
func Render(p Props) string {
	parts := make([]string, 0, 3)
	if p.Title != "" {
		parts = append(parts, titleStyle.Render(p.Title))
	}
	if p.Body != "" {
		parts = append(parts, p.Body)
	}
	if p.Note != "" {
		parts = append(parts, noteStyle.Render(p.Note))
	}

	return lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		PaddingLeft(1).
		Render(strings.Join(parts, "\n"))
}
