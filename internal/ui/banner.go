package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Banner renders text with a horizontal gradient from the primary to the
// secondary theme color. Without color it returns text unchanged.
func Banner(theme *Theme, text string) string {
	if theme.NoColor || text == "" {
		return text
	}

	from, err1 := colorful.Hex(theme.Colors.Primary)
	to, err2 := colorful.Hex(theme.Colors.Secondary)
	if err1 != nil || err2 != nil {
		return theme.Title.Render(text)
	}

	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		pos := 0.0
		if len(runes) > 1 {
			pos = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLuv(to, pos).Clamped()
		b.WriteString(lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Hex())).
			Render(string(r)))
	}
	return b.String()
}
