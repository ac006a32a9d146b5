package render

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	colorPrimary   = lipgloss.Color("39")  // Blue
	colorSecondary = lipgloss.Color("245") // Gray
	colorWarning   = lipgloss.Color("214") // Orange
	colorError     = lipgloss.Color("196") // Red
)

// Styles groups the lipgloss styles applied to rendered output.
type Styles struct {
	Header lipgloss.Style
	Key    lipgloss.Style
	Error  lipgloss.Style
	Hint   lipgloss.Style
}

// DefaultStyles returns the styles used when color output is enabled.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		Key:    lipgloss.NewStyle().Foreground(colorWarning),
		Error:  lipgloss.NewStyle().Foreground(colorError),
		Hint:   lipgloss.NewStyle().Foreground(colorSecondary),
	}
}
