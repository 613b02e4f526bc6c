package components

import (
	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// headline budget figures on the right.
func RenderStatusBar(width int, cash, savings string) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	figStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.Surface).
		Bold(true)

	left := " [?]help  [q]uit"
	right := ""
	if cash != "" {
		right = "Cash " + figStyle.Render(cash)
	}
	if savings != "" {
		if right != "" {
			right += "  "
		}
		right += "Saved " + figStyle.Render(savings)
	}
	if right != "" {
		right += " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return barStyle.Render(bar)
}
