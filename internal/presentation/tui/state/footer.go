package state

import "strings"

// FooterText returns the footer content for the current session.
func FooterText(session Session, status string, err error, helpText string) string {
	lines := make([]string, 0, 2)
	switch {
	case err != nil && session != GeneratingView:
		lines = append(lines, "Error: "+err.Error())
	case strings.TrimSpace(status) != "":
		lines = append(lines, strings.TrimSpace(status))
	}
	if helpText != "" {
		lines = append(lines, helpText)
	}
	return strings.Join(lines, "\n")
}
