package components

import (
	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Goals", Key: 'g', KeyPos: 0},
	{Name: "Debts", Key: 'd', KeyPos: 0},
	{Name: "Simulate", Key: 's', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1}, // x is not in "Settings"
}

// renderTab renders one tab cell with one space of padding on each side.
// Inactive tabs show their shortcut key in dim brackets.
func renderTab(tab Tab, active bool) string {
	t := theme.Active

	if active {
		style := lipgloss.NewStyle().
			Foreground(t.Accent).
			Background(t.SurfaceHover).
			Bold(true)
		return style.Render(" " + tab.Name + " ")
	}

	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		before := tab.Name[:tab.KeyPos]
		key := string(tab.Name[tab.KeyPos])
		after := tab.Name[tab.KeyPos+1:]
		return nameStyle.Render(" "+before) +
			dimStyle.Render("[") + keyStyle.Render(key) + dimStyle.Render("]") +
			nameStyle.Render(after+" ")
	}

	// Key not in name (e.g. "Settings" with 'x')
	return nameStyle.Render(" "+tab.Name) +
		dimStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimStyle.Render("]") +
		nameStyle.Render(" ")
}

// TabVisualWidth returns the rendered cell width of a tab. Mouse hitboxes
// in the app must walk the bar with exactly these widths.
func TabVisualWidth(tab Tab, active bool) int {
	w := len(tab.Name) + 2 // padding spaces
	if !active {
		w += 2 // bracket pair around the shortcut key
	}
	return w
}

// RenderTabBar renders the single-row tab bar padded to the full width.
func RenderTabBar(activeIdx, width int) string {
	t := theme.Active

	bar := ""
	for i, tab := range Tabs {
		bar += renderTab(tab, i == activeIdx)
	}

	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(width)
	return rowStyle.Render(bar)
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
