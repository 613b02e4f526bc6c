package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mikeintech/budgetterrr/internal/cadence"
	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/debt"
	"github.com/mikeintech/budgetterrr/internal/goal"
	"github.com/mikeintech/budgetterrr/internal/tui/components"
	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	budget := a.data.Budget
	savings := a.data.SavingsGoal
	var b strings.Builder

	expenses := budget.MonthlyExpenses()
	surplus := budget.Income - expenses - budget.TargetSavings

	// Row 1: Metric cards
	savingsDelta := ""
	if savings.Amount > 0 {
		savingsDelta = fmt.Sprintf("%s of %s goal",
			cli.FormatPercent(goal.Progress(savings.CurrentAmount, savings.Amount)),
			cli.FormatMoney(savings.Amount))
	}

	debtDelta := ""
	if len(a.data.Debts) > 0 {
		debtDelta = cli.FormatMoney(debt.MinimumPaymentTotal(a.data.Debts)) + "/mo minimum"
	}

	metrics := []components.Metric{
		{Label: "Cash", Value: cli.FormatMoney(budget.CurrentCash), Delta: cli.FormatMoneyDelta(surplus) + "/mo surplus"},
		{Label: "Savings", Value: cli.FormatMoney(savings.CurrentAmount), Delta: savingsDelta},
		{Label: "Income", Value: cli.FormatMoney(budget.Income) + "/mo", Delta: cli.FormatMoney(budget.PaySchedule.Amount) + " per check"},
		{Label: "Debt", Value: cli.FormatMoney(totalDebtBalance(a)), Delta: debtDelta},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: Expense breakdown chart
	names, values := sortedExpenses(a)
	if len(values) > 0 {
		chartH := 9
		if a.isCompactLayout() {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Monthly Expenses (%s)", cli.FormatMoney(expenses)),
			components.BarChart(values, names, t.Blue, components.CardInnerWidth(cw), chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Next paycheck + savings projection
	halves := components.LayoutRow(cw, 2)

	payCard := components.ContentCard("Next Paycheck",
		a.renderPaycheckBody(), halves[0])

	projCard := components.ContentCard("Savings Projection (12mo)",
		a.renderProjectionBody(), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Next Paycheck", a.renderPaycheckBody(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Savings Projection (12mo)",
			a.renderProjectionBody(), cw))
	} else {
		b.WriteString(components.CardRow([]string{payCard, projCard}))
	}

	if a.caughtUp > 0 {
		note := fmt.Sprintf("\n  Applied %d elapsed pay period(s) on load.", a.caughtUp)
		b.WriteString(noteStyle().Render(note))
	}

	return b.String()
}

func (a App) renderPaycheckBody() string {
	budget := a.data.Budget
	sched := budget.PaySchedule

	days := int(time.Until(sched.NextPayDate).Hours() / 24)
	when := cli.FormatDate(sched.NextPayDate)
	if days >= 0 {
		when += fmt.Sprintf(" (in %d days)", days)
	}

	perCheckExpenses := cadence.ToPerPeriod(sched.Frequency, budget.MonthlyExpenses())
	perCheckSavings := cadence.ToPerPeriod(sched.Frequency, budget.TargetSavings)

	return components.StatList([][2]string{
		{"Date", when},
		{"Amount", cli.FormatMoney(sched.Amount)},
		{"Frequency", cli.FormatFrequency(sched.Frequency)},
		{"Expenses due", cli.FormatMoney(perCheckExpenses)},
		{"Savings slice", cli.FormatMoney(perCheckSavings)},
		{"Left over", cli.FormatMoneyDelta(sched.Amount - perCheckExpenses - perCheckSavings)},
	})
}

func (a App) renderProjectionBody() string {
	t := theme.Active
	budget := a.data.Budget
	savings := a.data.SavingsGoal

	balances := make([]float64, 12)
	bal := savings.CurrentAmount
	for i := range balances {
		bal += budget.TargetSavings
		balances[i] = bal
	}

	var b strings.Builder
	b.WriteString(components.Sparkline(balances, t.Accent))
	b.WriteString("\n")
	b.WriteString(components.StatList([][2]string{
		{"Saving", cli.FormatMoney(budget.TargetSavings) + "/mo"},
		{"In a year", cli.FormatMoney(balances[11])},
		{"Goal reached", cli.FormatMonths(goal.TimeToGoal(savings.CurrentAmount, savings.Amount, budget.TargetSavings))},
	}))
	return b.String()
}

func noteStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Active.TextDim).Background(theme.Active.Surface)
}

func sortedExpenses(a App) ([]string, []float64) {
	budget := a.data.Budget

	type item struct {
		name   string
		amount float64
	}
	items := make([]item, 0, len(budget.Expenses)+len(budget.CustomExpenses))
	for name, amount := range budget.Expenses {
		if amount > 0 {
			items = append(items, item{name, amount})
		}
	}
	for _, exp := range budget.CustomExpenses {
		if exp.Amount > 0 {
			items = append(items, item{exp.Name, exp.Amount})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].amount != items[j].amount {
			return items[i].amount > items[j].amount
		}
		return items[i].name < items[j].name
	})

	names := make([]string, len(items))
	values := make([]float64, len(items))
	for i, it := range items {
		names[i] = shortLabel(it.name, 6)
		values[i] = it.amount
	}
	return names, values
}

func totalDebtBalance(a App) float64 {
	var total float64
	for _, d := range a.data.Debts {
		total += d.Balance
	}
	return total
}

func shortLabel(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
