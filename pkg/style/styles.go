package style

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(HeadingColor).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SimulatedStyle = lipgloss.NewStyle().
			Foreground(SimulatedColor).
			Bold(true)

	ResourceStyle = lipgloss.NewStyle().
			Foreground(PathColor)
)

// Result indicators
var (
	SuccessIndicator   = SuccessStyle.Render("✓")
	ErrorIndicator     = ErrorStyle.Render("✗")
	SimulatedIndicator = SimulatedStyle.Render("~")
)

// Indent pads s by level steps of two spaces
func Indent(s string, level int) string {
	return lipgloss.NewStyle().PaddingLeft(level * 2).Render(s)
}
