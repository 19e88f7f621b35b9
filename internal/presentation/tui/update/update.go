// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/dietplan/internal/application/usecase"
	"github.com/tesso57/dietplan/internal/domain/profile"
	"github.com/tesso57/dietplan/internal/presentation/tui/state"
	"github.com/tesso57/dietplan/internal/presentation/tui/textutil"
)

// Planner generates a diet plan for one profile.
type Planner interface {
	Generate(ctx context.Context, p profile.Profile) (usecase.DietPlan, error)
}

// Deps groups external dependencies for updates.
type Deps struct {
	Planner  Planner
	Progress *ProgressReporter
	OpenFile func(string) error
}

// PlanGeneratedMsg is emitted when the pipeline finishes.
type PlanGeneratedMsg struct {
	Plan usecase.DietPlan
	Err  error
}

// ProgressMsg carries one status line from the run listening on Source.
type ProgressMsg struct {
	Status string
	Source <-chan string
}

// FileOpenedMsg is emitted after asking the OS to open the exported PDF.
type FileOpenedMsg struct {
	Path string
	Err  error
}

// GeneratePlanCmd creates a command that runs the pipeline for p and calls
// done, when set, once the pipeline returns.
func GeneratePlanCmd(ctx context.Context, planner Planner, p profile.Profile, done func()) tea.Cmd {
	return func() tea.Msg {
		if done != nil {
			defer done()
		}
		if planner == nil {
			return PlanGeneratedMsg{Err: errors.New("diet plan service is not configured")}
		}
		out, err := planner.Generate(ctx, p)
		return PlanGeneratedMsg{Plan: out, Err: err}
	}
}

// WaitForProgressCmd blocks until the next status line arrives or ch is closed.
func WaitForProgressCmd(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		status, ok := <-ch
		if !ok {
			return nil
		}
		return ProgressMsg{Status: status, Source: ch}
	}
}

// OpenFileCmd asks the OS to open path.
func OpenFileCmd(open func(string) error, path string) tea.Cmd {
	return func() tea.Msg {
		if open == nil {
			return FileOpenedMsg{Path: path, Err: errors.New("opening files is not supported")}
		}
		return FileOpenedMsg{Path: path, Err: open(path)}
	}
}

// HandleKeyMsg processes key input. It reports false when the key should fall
// through to the focused component.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if key.Matches(msg, s.Keys.Quit) {
		cancelGeneration(s)
		return tea.Quit, true
	}

	switch s.Session {
	case state.FormView:
		return handleFormKeys(s, msg, deps)
	case state.GeneratingView:
		if key.Matches(msg, s.Keys.Back) {
			cancelGeneration(s)
			s.Status = "Cancelling..."
		}
		return nil, true
	case state.ResultView:
		return handleResultKeys(s, msg, deps)
	}
	return nil, false
}

func handleFormKeys(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	field := s.Form.Focused()
	switch {
	case key.Matches(msg, s.Keys.Next):
		s.Form.Next()
		return textinput.Blink, true
	case key.Matches(msg, s.Keys.Prev):
		s.Form.Prev()
		return textinput.Blink, true
	case key.Matches(msg, s.Keys.Left) && field != nil && field.Kind == state.ChoiceField:
		field.Cycle(-1)
		return nil, true
	case key.Matches(msg, s.Keys.Right) && field != nil && field.Kind == state.ChoiceField:
		field.Cycle(1)
		return nil, true
	case key.Matches(msg, s.Keys.Submit):
		return submit(s, deps), true
	case key.Matches(msg, s.Keys.Back):
		s.Err = nil
		return nil, true
	}
	return nil, false
}

func handleResultKeys(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, s.Keys.Back):
		s.Session = state.FormView
		s.Status = ""
		s.Err = nil
		return textinput.Blink, true
	case key.Matches(msg, s.Keys.Open):
		if s.PDFPath == "" {
			return nil, true
		}
		return OpenFileCmd(deps.OpenFile, s.PDFPath), true
	}
	return nil, false
}

func submit(s *state.ModelState, deps Deps) tea.Cmd {
	p, err := s.Form.Profile()
	if err != nil {
		s.Err = err
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.Cancel = cancel
	s.Session = state.GeneratingView
	s.Loading = true
	s.Err = nil
	s.Status = "AI is crafting your diet plan..."
	s.Progress = deps.Progress.Start()
	return tea.Batch(
		s.Spinner.Tick,
		GeneratePlanCmd(ctx, deps.Planner, p, deps.Progress.Finish),
		WaitForProgressCmd(s.Progress),
	)
}

// HandleProgressMsg shows a status line from the current run and keeps listening.
// Lines from earlier runs are ignored.
func HandleProgressMsg(s *state.ModelState, msg ProgressMsg) tea.Cmd {
	if !s.Loading || msg.Source == nil || msg.Source != s.Progress {
		return nil
	}
	s.Status = msg.Status
	return WaitForProgressCmd(s.Progress)
}

// HandlePlanGeneratedMsg switches to the result view, or back to the form on error.
func HandlePlanGeneratedMsg(s *state.ModelState, msg PlanGeneratedMsg) {
	cancelGeneration(s)
	s.Loading = false
	s.Progress = nil

	if msg.Err != nil {
		s.Session = state.FormView
		s.Status = ""
		s.Err = msg.Err
		return
	}

	s.Session = state.ResultView
	s.Err = nil
	s.PlanText = msg.Plan.Text
	s.PDFPath = msg.Plan.PDFPath
	s.Status = "Saved to " + msg.Plan.PDFPath
	UpdateSizes(s)
	s.Viewport.GotoTop()
}

// HandleFileOpenedMsg reports a failure to open the PDF.
func HandleFileOpenedMsg(s *state.ModelState, msg FileOpenedMsg) {
	if msg.Err != nil {
		s.Err = msg.Err
		return
	}
	s.Err = nil
	s.Status = "Opened " + msg.Path
}

// HandleWindowSize stores the terminal size and resizes the viewport.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height
	UpdateSizes(s)
}

// SetPlanContent wraps the plan text to the viewport width.
func SetPlanContent(s *state.ModelState) {
	width := s.Viewport.Width - s.Viewport.Style.GetHorizontalFrameSize()
	if width <= 0 {
		s.Viewport.SetContent(s.PlanText)
		return
	}
	s.Viewport.SetContent(textutil.Wrap(s.PlanText, width))
}

func cancelGeneration(s *state.ModelState) {
	if s.Cancel != nil {
		s.Cancel()
		s.Cancel = nil
	}
}
