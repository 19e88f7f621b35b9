// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"
	"strings"

	"github.com/tesso57/dietplan/internal/presentation/tui/components/form"
	"github.com/tesso57/dietplan/internal/presentation/tui/components/header"
	mainview "github.com/tesso57/dietplan/internal/presentation/tui/components/main"
	"github.com/tesso57/dietplan/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/dietplan/internal/presentation/tui/metrics"
	"github.com/tesso57/dietplan/internal/presentation/tui/state"
	"github.com/tesso57/dietplan/internal/presentation/tui/textutil"
	"github.com/tesso57/dietplan/internal/presentation/tui/view"
)

// Sidebar is hidden below this terminal width.
const minSidebarWidth = 60

func (m *Model) buildProps() view.Props {
	showSidebar := m.state.Session == state.FormView && m.state.Width >= minSidebarWidth
	return view.Props{
		Header:      m.buildHeaderProps(),
		Main:        m.buildMainProps(showSidebar),
		Sidebar:     m.buildSidebarProps(),
		ShowSidebar: showSidebar,
		Footer:      m.buildFooterProps(),
	}
}

func (m *Model) buildHeaderProps() header.Props {
	props := header.Props{Title: "Smart AI Diet Planner"}
	switch m.state.Session {
	case state.FormView:
		props.Subtitle = "Generate a customized diet plan with AI"
	case state.GeneratingView:
		props.Subtitle = "Please wait"
	case state.ResultView:
		props.Subtitle = "Your AI-Generated Diet Plan"
	}
	return props
}

func (m *Model) buildMainProps(showSidebar bool) mainview.Props {
	width := m.state.Width
	if showSidebar {
		width -= sidebarWidth(m.state.Width)
	}
	props := mainview.Props{Width: width}

	switch m.state.Session {
	case state.FormView:
		props.Title = "Your details"
		props.Body = form.Render(buildFormProps(&m.state.Form))
	case state.GeneratingView:
		props.Body = fmt.Sprintf("%s %s", m.state.Spinner.View(), m.state.Status)
		if len(m.state.Providers) > 0 {
			props.Note = "Providers: " + strings.Join(m.state.Providers, ", ")
		}
	case state.ResultView:
		props.Body = m.state.Viewport.View()
	}
	return props
}

func buildFormProps(f *state.Form) form.Props {
	rows := make([]form.Row, 0, len(f.Fields))
	for i := range f.Fields {
		field := &f.Fields[i]
		row := form.Row{
			Label:   field.Label,
			Choice:  field.Kind == state.ChoiceField,
			Focused: i == f.Focus,
		}
		if row.Choice {
			row.Value = field.Value()
		} else {
			row.Value = field.Input.View()
		}
		rows = append(rows, row)
	}
	return form.Props{Rows: rows, LabelWidth: metrics.FormLabelWidth}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	lines := make([]string, 0, len(m.state.Providers)+2)
	for i, heading := range m.state.Providers {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, heading))
	}
	if len(m.state.Providers) > 1 {
		lines = append(lines, "", "On failure: "+m.settings.MergePolicy)
	}
	return sidebar.Props{
		Title:  "Providers",
		Lines:  lines,
		Width:  sidebarWidth(m.state.Width),
		Active: m.state.Session == state.FormView,
	}
}

func (m *Model) buildFooterProps() string {
	var helpView string
	m.state.Help.Width = m.state.Width
	if m.state.Session == state.ResultView {
		helpView = m.state.Help.ShortHelpView(m.state.Keys.ResultHelp())
	} else {
		helpView = m.state.Help.View(&m.state.Keys)
	}

	status := m.state.Status
	if m.state.Session == state.GeneratingView {
		status = ""
	}
	if m.state.Width > 0 {
		status = textutil.Truncate(textutil.SingleLine(status), m.state.Width)
	}
	return state.FooterText(m.state.Session, status, m.state.Err, helpView)
}

func sidebarWidth(total int) int {
	return total / 3
}
