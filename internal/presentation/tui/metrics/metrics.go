// Package metrics centralizes layout constants for the TUI.
package metrics

const (
	HeaderLines      = 3
	StatusLines      = 1
	MainWidthPadding = 2
	FormLabelWidth   = 14
)
