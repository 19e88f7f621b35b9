// Package form renders the profile input form.
package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one rendered field.
type Row struct {
	Label   string
	Value   string
	Choice  bool
	Focused bool
}

// Props defines the properties for the form component.
type Props struct {
	Rows       []Row
	LabelWidth int
}

var (
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	choiceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	focusPointer = focusStyle.Render("▸ ")
)

// Render renders the form component.
func Render(p Props) string {
	lines := make([]string, 0, len(p.Rows))
	for _, row := range p.Rows {
		pointer := "  "
		label := labelStyle.Width(p.LabelWidth).Render(row.Label)
		if row.Focused {
			pointer = focusPointer
			label = focusStyle.Width(p.LabelWidth).Render(row.Label)
		}

		value := row.Value
		if row.Choice {
			value = choiceStyle.Render(value)
			if row.Focused {
				value = fmt.Sprintf("‹ %s ›", value)
			}
		}
		lines = append(lines, pointer+label+value)
	}
	return strings.Join(lines, "\n")
}
