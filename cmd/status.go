package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeintech/budgetterrr/internal/cadence"
	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/config"
	"github.com/mikeintech/budgetterrr/internal/goal"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show budget, savings, and upcoming paycheck status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	data, err := loadSnapshot(st)
	if err != nil {
		return err
	}

	budget := data.Budget
	sched := budget.PaySchedule
	expenses := budget.MonthlyExpenses()
	surplus := budget.Income - expenses - budget.TargetSavings

	fmt.Println()
	fmt.Println(cli.RenderTitle("BUDGET STATUS"))
	fmt.Println()

	fmt.Printf("  Cash on hand: %s\n", cli.FormatMoney(budget.CurrentCash))
	if data.SavingsGoal.Amount > 0 {
		fmt.Printf("  Savings:      %s\n", cli.RenderProgressBar(
			data.SavingsGoal.CurrentAmount, data.SavingsGoal.Amount, 24))
	} else {
		fmt.Printf("  Savings:      %s\n", cli.FormatMoney(data.SavingsGoal.CurrentAmount))
	}
	if !sched.NextPayDate.IsZero() {
		fmt.Printf("  Next paycheck: %s (%s, %s)\n",
			cli.FormatDate(sched.NextPayDate),
			cli.FormatMoney(sched.Amount),
			cli.FormatFrequency(sched.Frequency))
	}
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Monthly Budget",
		Headers: []string{"Line", "Amount"},
		Rows: [][]string{
			{"Income", cli.FormatMoney(budget.Income)},
			{"Expenses", cli.FormatMoney(expenses)},
			{"Target savings", cli.FormatMoney(budget.TargetSavings)},
			{"---"},
			{"Surplus", cli.FormatMoneyDelta(surplus)},
		},
	}))

	// Per-paycheck view at the configured cadence.
	perPeriod := [][]string{
		{"Paycheck", cli.FormatMoney(sched.Amount)},
		{"Expenses", cli.FormatMoney(cadence.ToPerPeriod(sched.Frequency, expenses))},
		{"Savings", cli.FormatMoney(cadence.ToPerPeriod(sched.Frequency, budget.TargetSavings))},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Per Paycheck (%s)", cli.FormatFrequency(sched.Frequency)),
		Headers: []string{"Line", "Amount"},
		Rows:    perPeriod,
	}))

	renderExpenseBars(budget.Expenses)

	if len(data.SavingsGoal.Goals) > 0 {
		var onTrack int
		now := time.Now()
		for _, g := range data.SavingsGoal.Goals {
			if goal.OnTrack(g, now) {
				onTrack++
			}
		}
		fmt.Printf("  Goals: %d (%d on track)\n", len(data.SavingsGoal.Goals), onTrack)
	}
	if len(data.Debts) > 0 {
		var balance float64
		for _, d := range data.Debts {
			balance += d.Balance
		}
		fmt.Printf("  Debts: %d totaling %s\n", len(data.Debts), cli.FormatMoney(balance))
	}
	fmt.Println()

	return nil
}

// renderExpenseBars prints a sorted horizontal bar per expense category.
func renderExpenseBars(expenses map[string]float64) {
	if len(expenses) == 0 {
		return
	}

	type entry struct {
		name   string
		amount float64
	}
	entries := make([]entry, 0, len(expenses))
	var max float64
	for name, amount := range expenses {
		entries = append(entries, entry{name, amount})
		if amount > max {
			max = amount
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].amount > entries[j].amount })

	fmt.Println("  Expense breakdown")
	for _, e := range entries {
		fmt.Println(cli.RenderHorizontalBar(e.name, e.amount, max, 24))
	}
	fmt.Println()
}
