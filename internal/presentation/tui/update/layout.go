package update

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/dietplan/internal/presentation/tui/metrics"
	"github.com/tesso57/dietplan/internal/presentation/tui/state"
)

// UpdateSizes fits the viewport between the header and the footer.
func UpdateSizes(s *state.ModelState) {
	if s.Width <= 0 || s.Height <= 0 {
		SetPlanContent(s)
		return
	}

	available := s.Height - metrics.HeaderLines - footerHeight(s) - metrics.StatusLines
	s.Viewport.Width = clampMin(s.Width-metrics.MainWidthPadding, 1)
	s.Viewport.Height = clampMin(available, 1)
	SetPlanContent(s)
}

func footerHeight(s *state.ModelState) int {
	s.Help.Width = s.Width
	return lipgloss.Height(s.Help.View(&s.Keys))
}

func clampMin(value, min int) int {
	if value < min {
		return min
	}
	return value
}
