// Package style holds the terminal formatting configuration for all user-facing
// output. Color handling is an explicit Styles value passed to whatever prints,
// never process-global state.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette (256-color codes).
const (
	colorGreen  = "42"  // success, completed steps
	colorCyan   = "45"  // step headers, prompts
	colorYellow = "220" // warnings
	colorRed    = "196" // errors
	colorGray   = "245" // secondary text
)

// Styles holds the render styles for CLI output.
type Styles struct {
	Header  lipgloss.Style
	Step    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorCyan)),
		Step:    lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGreen)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
	}
}

// PlainStyles returns an uncolored style set for non-TTY output.
func PlainStyles() *Styles {
	return &Styles{
		Header:  lipgloss.NewStyle(),
		Step:    lipgloss.NewStyle(),
		Success: lipgloss.NewStyle(),
		Warning: lipgloss.NewStyle(),
		Error:   lipgloss.NewStyle(),
		Dim:     lipgloss.NewStyle(),
	}
}

// Detect picks a style set based on the noColor flag, the NO_COLOR
// convention, and whether stdout is a terminal.
func Detect(noColor bool) *Styles {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return PlainStyles()
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return PlainStyles()
	}
	return DefaultStyles()
}
