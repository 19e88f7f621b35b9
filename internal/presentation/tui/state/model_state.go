package state

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Session   Session
	Form      Form
	Viewport  viewport.Model
	Help      help.Model
	Spinner   spinner.Model
	Loading   bool
	Keys      KeyMap
	Width     int
	Height    int
	Err       error
	Status    string
	Providers []string
	PlanText  string
	PDFPath   string
	Cancel    context.CancelFunc
	Progress  <-chan string
}
