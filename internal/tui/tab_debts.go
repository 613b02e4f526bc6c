package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/debt"
	"github.com/mikeintech/budgetterrr/internal/model"
	"github.com/mikeintech/budgetterrr/internal/tui/components"
	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderDebtsTab(cw int) string {
	debts := a.data.Debts
	if len(debts) == 0 {
		return emptyTabMessage("No debts tracked.",
			"budgetterrr debts add \"Visa\" 1200 19.99 50 --type credit_card")
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Debt Accounts", a.renderDebtList(), cw))
	b.WriteString("\n")

	selected := debts[clamp(a.debtCursor, 0, len(debts)-1)]
	b.WriteString(components.ContentCard(selected.Name,
		a.renderDebtDetail(selected, components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) renderDebtList() string {
	t := theme.Active
	debts := a.data.Debts

	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var total, minimum float64
	var b strings.Builder
	for i, d := range debts {
		if i > 0 {
			b.WriteString("\n")
		}
		marker := "  "
		style := nameStyle
		if i == a.debtCursor {
			marker = "▸ "
			style = selStyle
		}
		b.WriteString(markerStyle.Render(marker))
		b.WriteString(style.Render(fmt.Sprintf("%-20s", shortLabel(d.Name, 20))))
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %-14s %12s  %6.2f%%  %10s/mo",
			debt.TypeLabel(d.Type),
			cli.FormatMoney(d.Balance),
			d.InterestRate,
			cli.FormatMoney(d.MinimumPayment))))
		total += d.Balance
		minimum += d.MinimumPayment
	}

	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  Total %s owed, %s/mo in minimums",
		cli.FormatMoney(total), cli.FormatMoney(minimum))))
	return b.String()
}

func (a App) renderDebtDetail(d model.DebtAccount, innerW int) string {
	t := theme.Active
	start := firstOfNextMonth(time.Now())
	schedule := debt.Amortize(d, d.MinimumPayment, start)

	payoff := "Never at the minimum payment"
	interest := "—"
	if debt.PaidOff(schedule) {
		payoff = fmt.Sprintf("%s (%d payments)", cli.FormatDate(debt.PayoffDate(schedule)), len(schedule))
		interest = cli.FormatMoney(debt.TotalInterest(schedule))
	}

	var b strings.Builder
	b.WriteString(components.StatList([][2]string{
		{"Balance", cli.FormatMoney(d.Balance)},
		{"APR", fmt.Sprintf("%.2f%%", d.InterestRate)},
		{"Minimum", cli.FormatMoney(d.MinimumPayment) + "/mo"},
		{"Paid off", payoff},
		{"Interest paid", interest},
	}))

	if len(schedule) > 1 {
		points := len(schedule)
		if points > innerW {
			points = innerW
		}
		balances := make([]float64, points)
		for i := range balances {
			idx := i * (len(schedule) - 1) / (points - 1)
			balances[i] = schedule[idx].RemainingBalance
		}
		dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Balance over time"))
		b.WriteString("\n")
		b.WriteString(components.Sparkline(balances, t.Orange))
	}
	return b.String()
}

func firstOfNextMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
