package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/dietplan/internal/application/settings"
	"github.com/tesso57/dietplan/internal/application/usecase"
	"github.com/tesso57/dietplan/internal/presentation/tui/state"
	"github.com/tesso57/dietplan/internal/presentation/tui/update"
	"github.com/tesso57/dietplan/internal/presentation/tui/view"
)

// Model represents the main application state.
type Model struct {
	settings settings.Settings
	deps     update.Deps
	state    *state.ModelState
}

// NewModel creates a model driving svc and subscribes to its progress updates.
func NewModel(cfg settings.Settings, svc *usecase.DietPlanService) *Model {
	reporter := update.NewProgressReporter()
	var headings []string
	if svc != nil {
		svc.Progress = reporter
		for _, p := range svc.Providers {
			headings = append(headings, p.Heading)
		}
	}
	m := NewModelWithPlanner(cfg, svc, headings)
	m.deps.Progress = reporter
	return m
}

// NewModelWithPlanner creates a model around any planner.
func NewModelWithPlanner(cfg settings.Settings, planner update.Planner, providers []string) *Model {
	return &Model{
		settings: cfg,
		deps: update.Deps{
			Planner:  planner,
			OpenFile: openFile,
		},
		state: newModelState(cfg, providers),
	}
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps)
		if handled {
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.ProgressMsg:
		cmds = append(cmds, update.HandleProgressMsg(m.state, msg))
	case update.PlanGeneratedMsg:
		update.HandlePlanGeneratedMsg(m.state, msg)
	case update.FileOpenedMsg:
		update.HandleFileOpenedMsg(m.state, msg)
	}

	if m.state.Loading {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state.Session {
	case state.FormView:
		if field := m.state.Form.Focused(); field != nil && field.Kind == state.NumberField {
			field.Input, cmd = field.Input.Update(msg)
			cmds = append(cmds, cmd)
		}
	case state.ResultView:
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

func newModelState(cfg settings.Settings, providers []string) *state.ModelState {
	st := &state.ModelState{
		Session:   state.FormView,
		Form:      state.NewForm(),
		Viewport:  newViewport(),
		Help:      help.New(),
		Spinner:   newSpinner(),
		Keys:      state.NewKeyMap(cfg.KeyMap),
		Providers: append([]string(nil), providers...),
	}

	st.Viewport.KeyMap.PageUp = st.Keys.UpPage
	st.Viewport.KeyMap.PageDown = st.Keys.DownPage

	return st
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	return vp
}
