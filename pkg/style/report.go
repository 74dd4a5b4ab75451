package style

import (
	"fmt"
	"strings"
	"time"
)

// Status of one reported action
type Status string

const (
	StatusApplied   Status = "applied"
	StatusSimulated Status = "simulated"
	StatusFailed    Status = "failed"
)

// Line is one action in a report
type Line struct {
	Resource string
	Action   string
	Status   Status
	Duration time.Duration
	Err      error
}

// Indicator returns the styled marker for status
func Indicator(status Status) string {
	switch status {
	case StatusSimulated:
		return SimulatedIndicator
	case StatusFailed:
		return ErrorIndicator
	default:
		return SuccessIndicator
	}
}

// RenderLine renders one report line, with the error beneath a failure
func RenderLine(l Line) string {
	line := fmt.Sprintf("%s %s %s %s",
		Indicator(l.Status),
		ResourceStyle.Render(fmt.Sprintf("%s[%s]", l.Resource, l.Action)),
		string(l.Status),
		MutedStyle.Render(l.Duration.Round(time.Millisecond).String()))
	if l.Err != nil {
		line += "\n" + Indent(ErrorStyle.Render(l.Err.Error()), 2)
	}
	return line
}

// RenderReport renders a titled report with a summary footer
func RenderReport(title string, lines []Line) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(title) + "\n")
	if len(lines) == 0 {
		b.WriteString(MutedStyle.Render("No actions.") + "\n")
		return b.String()
	}

	counts := map[Status]int{}
	for _, l := range lines {
		b.WriteString(Indent(RenderLine(l), 1) + "\n")
		counts[l.Status]++
	}
	b.WriteString(MutedStyle.Render(fmt.Sprintf("%d applied, %d simulated, %d failed",
		counts[StatusApplied], counts[StatusSimulated], counts[StatusFailed])) + "\n")
	return b.String()
}
