package repl

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	Primary     = lipgloss.Color("#8BC34A") // Lime Green
	Accent      = lipgloss.Color("#2196F3") // Blue
	Destructive = lipgloss.Color("#e53935") // Red
	Muted       = lipgloss.Color("#6b7a90")
)

// Styles holds the lipgloss styles used for REPL output.
type Styles struct {
	Banner  lipgloss.Style
	Tagline lipgloss.Style
	Error   lipgloss.Style
	Echo    lipgloss.Style
}

// NewStyles returns colored styles, or plain ones when color is false.
func NewStyles(color bool) Styles {
	if !color {
		plain := lipgloss.NewStyle()
		return Styles{Banner: plain, Tagline: plain, Error: plain, Echo: plain}
	}
	return Styles{
		Banner:  lipgloss.NewStyle().Foreground(Primary).Bold(true),
		Tagline: lipgloss.NewStyle().Foreground(Accent).Italic(true),
		Error:   lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Echo:    lipgloss.NewStyle().Foreground(Muted),
	}
}
