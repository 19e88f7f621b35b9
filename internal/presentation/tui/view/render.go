// Package view orchestrates the composition of UI components.
package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/dietplan/internal/presentation/tui/components/header"
	"github.com/tesso57/dietplan/internal/presentation/tui/components/layout"
	mainview "github.com/tesso57/dietplan/internal/presentation/tui/components/main"
	"github.com/tesso57/dietplan/internal/presentation/tui/components/sidebar"
)

// Props aggregates properties for all UI components.
type Props struct {
	Header      header.Props
	Main        mainview.Props
	Sidebar     sidebar.Props
	ShowSidebar bool
	Footer      string
}

// Render renders the complete UI view based on the provided props.
func Render(p Props) string {
	mainStr := mainview.Render(p.Main)
	if p.ShowSidebar {
		mainStr = lipgloss.JoinHorizontal(lipgloss.Top, mainStr, sidebar.Render(p.Sidebar))
	}

	return layout.Render(layout.Props{
		Header: header.Render(p.Header),
		Main:   mainStr,
		Footer: p.Footer,
	})
}
