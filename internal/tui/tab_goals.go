package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/goal"
	"github.com/mikeintech/budgetterrr/internal/model"
	"github.com/mikeintech/budgetterrr/internal/tui/components"
	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGoalsTab(cw int) string {
	goals := a.data.SavingsGoal.Goals
	if len(goals) == 0 {
		return emptyTabMessage("No goals yet.",
			"budgetterrr goals add \"Emergency Fund\" 5000")
	}

	listCard := components.ContentCard("Goals", a.renderGoalList(cw), cw)

	selected := goals[clamp(a.goalCursor, 0, len(goals)-1)]
	detailCard := components.ContentCard(selected.Name,
		a.renderGoalDetail(selected), cw)

	var b strings.Builder
	b.WriteString(listCard)
	b.WriteString("\n")
	b.WriteString(detailCard)
	return b.String()
}

func (a App) renderGoalList(cw int) string {
	t := theme.Active
	goals := a.data.SavingsGoal.Goals
	now := time.Now()

	innerW := components.CardInnerWidth(cw)
	labelW := 18
	barW := innerW - labelW - 24
	if barW < 10 {
		barW = 10
	}

	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)

	var b strings.Builder
	for i, g := range goals {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := "  "
		if i == a.goalCursor {
			marker = "▸ "
		}

		note := "behind"
		if goal.OnTrack(g, now) {
			note = "on track"
		}

		b.WriteString(markerStyle.Render(marker))
		b.WriteString(components.GoalBar(g.Name,
			goal.Progress(g.CurrentAmount, g.TargetAmount)/100, note, labelW, barW))
	}
	return b.String()
}

func (a App) renderGoalDetail(g model.Goal) string {
	now := time.Now()

	pairs := [][2]string{
		{"Saved", fmt.Sprintf("%s of %s", cli.FormatMoney(g.CurrentAmount), cli.FormatMoney(g.TargetAmount))},
		{"Category", string(g.Category)},
		{"Priority", string(g.Priority)},
		{"Contributing", cli.FormatMoney(g.MonthlyContribution) + "/mo"},
		{"Needed", cli.FormatMoney(goal.RequiredMonthlyContribution(g, now)) + "/mo to hit the date"},
	}
	if !g.TargetDate.IsZero() {
		pairs = append(pairs, [2]string{"Target date", cli.FormatDate(g.TargetDate)})
	}
	pairs = append(pairs, [2]string{"Projected done", cli.FormatDate(goal.ProjectedCompletionDate(g, now))})
	if g.AutoSave {
		pairs = append(pairs, [2]string{"Auto-save", "on (funded by the daemon monthly)"})
	}

	var b strings.Builder
	b.WriteString(components.StatList(pairs))

	t := theme.Active
	alertStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	// Alerts that would fire against the configured thresholds right now;
	// they are persisted by the daemon or the goals command, not here.
	if pending, _ := goal.CheckAlerts(g, now, a.thresholds); len(pending) > 0 {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("New"))
		for _, al := range pending {
			b.WriteString("\n")
			b.WriteString(alertStyle.Render("! " + al.Message))
		}
	}

	if recent := recentAlerts(g.Alerts, 3); len(recent) > 0 {
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Recent alerts"))
		for _, al := range recent {
			b.WriteString("\n")
			b.WriteString(alertStyle.Render("• " + al.Message))
		}
	}
	return b.String()
}

// recentAlerts returns up to n of the newest alerts, newest first.
func recentAlerts(alerts []model.GoalAlert, n int) []model.GoalAlert {
	if len(alerts) == 0 {
		return nil
	}
	out := make([]model.GoalAlert, len(alerts))
	copy(out, alerts)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func emptyTabMessage(headline, hint string) string {
	t := theme.Active
	headStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	return "\n  " + headStyle.Render(headline) + "\n\n  " + hintStyle.Render(hint)
}
