// Package ui renders terminal output for create-lynx-app: the theme and
// text styles, the gradient banner and a progress spinner that degrades to
// plain log lines when no terminal is attached.
package ui

import "github.com/charmbracelet/lipgloss"

// ThemeConfig selects how output is styled.
type ThemeConfig struct {
	NoColor bool
}

// Colors are the hex colors of a theme.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme carries the colors and derived styles used across the CLI.
type Theme struct {
	NoColor bool
	Colors  Colors

	Title   lipgloss.Style
	Success lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Card    lipgloss.Style
}

var lynxColors = Colors{
	Primary:   "#FF6B9D",
	Secondary: "#45B7D1",
	Success:   "#2ECC71",
	Warning:   "#F1C40F",
	Error:     "#E74C3C",
	Muted:     "#8A8F98",
}

// NewTheme builds a theme. With NoColor every style renders plain text.
func NewTheme(cfg ThemeConfig) *Theme {
	t := &Theme{NoColor: cfg.NoColor, Colors: lynxColors}
	if cfg.NoColor {
		plain := lipgloss.NewStyle()
		t.Title, t.Success, t.Warn, t.Error, t.Muted, t.Accent = plain, plain, plain, plain, plain, plain
		t.Card = plain.Padding(0, 1)
		return t
	}

	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	t.Title = fg(t.Colors.Primary).Bold(true)
	t.Success = fg(t.Colors.Success).Bold(true)
	t.Warn = fg(t.Colors.Warning)
	t.Error = fg(t.Colors.Error).Bold(true)
	t.Muted = fg(t.Colors.Muted)
	t.Accent = fg(t.Colors.Secondary)
	t.Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Colors.Success)).
		Padding(0, 2)
	return t
}
