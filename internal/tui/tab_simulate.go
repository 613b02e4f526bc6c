package tui

import (
	"fmt"
	"strings"

	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/sim"
	"github.com/mikeintech/budgetterrr/internal/tui/components"
	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSimulateTab(cw int) string {
	var b strings.Builder
	b.WriteString(components.ContentCard("What-If Scenarios", a.renderScenarioList(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Baseline vs Simulated", a.renderSimComparison(), cw))
	return b.String()
}

func (a App) renderScenarioList() string {
	t := theme.Active
	state := a.simState

	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	onStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	offStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	for i, sc := range state.Scenarios {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := "  "
		style := nameStyle
		if i == a.simCursor {
			marker = "▸ "
			style = selStyle
		}

		box := offStyle.Render("[ ]")
		if state.IsActive(sc.ID) {
			box = onStyle.Render("[x]")
		}

		b.WriteString(markerStyle.Render(marker))
		b.WriteString(box)
		b.WriteString(style.Render(fmt.Sprintf(" %-22s", sc.Name)))
		b.WriteString(descStyle.Render(fmt.Sprintf(" %s (%s/yr)",
			sc.Description, cli.FormatMoneyDelta(sc.Impact))))
	}

	b.WriteString("\n\n")
	b.WriteString(offStyle.Render("  [Enter] toggle a scenario; simulation never touches your real data"))
	return b.String()
}

func (a App) renderSimComparison() string {
	baseline := sim.NewState(a.data.Budget, a.data.SavingsGoal)
	state := a.simState

	row := func(label, base, current string) [2]string {
		if base == current {
			return [2]string{label, base}
		}
		return [2]string{label, fmt.Sprintf("%s → %s", base, current)}
	}

	return components.StatList([][2]string{
		row("Monthly income",
			cli.FormatMoney(baseline.Budget.Income),
			cli.FormatMoney(state.Budget.Income)),
		row("Monthly expenses",
			cli.FormatMoney(baseline.Budget.MonthlyExpenses()),
			cli.FormatMoney(state.Budget.MonthlyExpenses())),
		row("Target savings",
			cli.FormatMoney(baseline.Budget.TargetSavings),
			cli.FormatMoney(state.Budget.TargetSavings)),
		row("Projected savings/yr",
			cli.FormatMoney(sim.ProjectedSavings(baseline)),
			cli.FormatMoney(sim.ProjectedSavings(state))),
		row("Time to goal",
			cli.FormatMonths(sim.TimeToGoal(baseline)),
			cli.FormatMonths(sim.TimeToGoal(state))),
	})
}
