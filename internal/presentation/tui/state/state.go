// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/dietplan/internal/application/settings"
)

// Session represents the current view state.
type Session int

const (
	FormView Session = iota
	GeneratingView
	ResultView
)

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Left     key.Binding
	Right    key.Binding
	Submit   key.Binding
	Back     key.Binding
	Open     key.Binding
	Quit     key.Binding
	UpPage   key.Binding
	DownPage key.Binding
}

// ShortHelp returns the bindings shown in the footer.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Submit, k.Quit}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right},
		{k.Submit, k.Back, k.Open, k.Quit},
		{k.UpPage, k.DownPage},
	}
}

// ResultHelp returns the bindings relevant once a plan is shown.
func (k *KeyMap) ResultHelp() []key.Binding {
	return []key.Binding{k.UpPage, k.DownPage, k.Open, k.Back, k.Quit}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Next)...),
			key.WithHelp(cfg.Next, "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Prev)...),
			key.WithHelp(cfg.Prev, "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Left)...),
			key.WithHelp(cfg.Left+"/"+cfg.Right, "change option"),
		),
		Right: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Right)...),
			key.WithHelp(cfg.Right, "next option"),
		),
		Submit: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Submit)...),
			key.WithHelp(cfg.Submit, "generate plan"),
		),
		Back: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Back)...),
			key.WithHelp(cfg.Back, "back"),
		),
		Open: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Open)...),
			key.WithHelp(cfg.Open, "open pdf"),
		),
		Quit: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Quit)...),
			key.WithHelp(cfg.Quit, "quit"),
		),
		UpPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.UpPage)...),
			key.WithHelp(cfg.UpPage, "pgup"),
		),
		DownPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.DownPage)...),
			key.WithHelp(cfg.DownPage, "pgdn"),
		),
	}
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}
