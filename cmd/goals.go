package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/config"
	"github.com/mikeintech/budgetterrr/internal/goal"
	"github.com/mikeintech/budgetterrr/internal/model"
)

var (
	flagGoalCategory string
	flagGoalPriority string
	flagGoalTarget   string
	flagGoalMonthly  float64
	flagGoalAutoSave bool
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "List and manage savings goals",
	RunE:  runGoalsList,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <name> <target-amount>",
	Short: "Add a savings goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsAdd,
}

var goalsRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a savings goal",
	Args:    cobra.ExactArgs(1),
	RunE:    runGoalsRemove,
}

var goalsFundCmd = &cobra.Command{
	Use:   "fund <name> <amount>",
	Short: "Add money toward a goal",
	Args:  cobra.ExactArgs(2),
	RunE:  runGoalsFund,
}

func init() {
	goalsAddCmd.Flags().StringVar(&flagGoalCategory, "category", "other", "Goal category (emergency, vacation, car, house, education, retirement, debt, other)")
	goalsAddCmd.Flags().StringVar(&flagGoalPriority, "priority", "medium", "Goal priority (low, medium, high)")
	goalsAddCmd.Flags().StringVar(&flagGoalTarget, "by", "", "Target date (YYYY-MM-DD, default one year out)")
	goalsAddCmd.Flags().Float64Var(&flagGoalMonthly, "monthly", 0, "Planned monthly contribution")
	goalsAddCmd.Flags().BoolVar(&flagGoalAutoSave, "auto-save", false, "Apply the monthly contribution automatically")

	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsRemoveCmd)
	goalsCmd.AddCommand(goalsFundCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoalsList(_ *cobra.Command, _ []string) error {
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

	goals := data.SavingsGoal.Goals
	if len(goals) == 0 {
		fmt.Println()
		fmt.Println("  No goals yet. Add one:")
		fmt.Println("    budgetterrr goals add \"Emergency fund\" 10000 --by 2027-01-01")
		fmt.Println()
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		track := "behind"
		if goal.OnTrack(g, now) {
			track = "on track"
		}
		rows = append(rows, []string{
			g.Name,
			string(g.Category),
			cli.FormatMoney(g.CurrentAmount),
			cli.FormatMoney(g.TargetAmount),
			cli.FormatPercent(goal.Progress(g.CurrentAmount, g.TargetAmount)),
			cli.FormatDate(g.TargetDate),
			track,
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Savings Goals",
		Headers: []string{"Goal", "Category", "Saved", "Target", "Progress", "By", "Status"},
		Rows:    rows,
	}))

	// Fresh alerts since the last check.
	th := config.AlertThresholds(cfg)
	var printed bool
	for i, g := range goals {
		updated := goal.ApplyAlerts(g, now, th)
		for _, a := range updated.Alerts[len(g.Alerts):] {
			if !printed {
				fmt.Println("  Alerts")
				printed = true
			}
			fmt.Printf("    %s: %s\n", g.Name, a.Message)
		}
		data.SavingsGoal.Goals[i] = updated
	}
	if printed {
		fmt.Println()
		if err := saveSnapshot(st, data); err != nil {
			return err
		}
	}

	return nil
}

func runGoalsAdd(_ *cobra.Command, args []string) error {
	name := args[0]
	target, err := parseAmount(args[1])
	if err != nil {
		return err
	}

	category := model.GoalCategory(strings.ToLower(flagGoalCategory))
	if !validGoalCategory(category) {
		return fmt.Errorf("unknown category %q", flagGoalCategory)
	}
	priority := model.GoalPriority(strings.ToLower(flagGoalPriority))
	switch priority {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
	default:
		return fmt.Errorf("unknown priority %q", flagGoalPriority)
	}

	now := time.Now()
	targetDate := now.AddDate(1, 0, 0)
	if flagGoalTarget != "" {
		targetDate, err = time.Parse("2006-01-02", flagGoalTarget)
		if err != nil {
			return fmt.Errorf("parsing --by date: %w", err)
		}
	}

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
	if _, ok := findGoal(data.SavingsGoal.Goals, name); ok {
		return fmt.Errorf("goal %q already exists", name)
	}

	g := model.Goal{
		ID:                  model.NewID(),
		Name:                name,
		Category:            category,
		TargetAmount:        target,
		TargetDate:          targetDate,
		Priority:            priority,
		AutoSave:            flagGoalAutoSave,
		MonthlyContribution: flagGoalMonthly,
		CreatedAt:           now,
	}
	data.SavingsGoal.Goals = append(data.SavingsGoal.Goals, g)

	if err := saveSnapshot(st, data); err != nil {
		return err
	}

	required := goal.RequiredMonthlyContribution(g, now)
	fmt.Printf("  Added %q: %s by %s", name, cli.FormatMoney(target), cli.FormatDate(targetDate))
	if required > 0 {
		fmt.Printf(" (%s/month to stay on track)", cli.FormatMoney(required))
	}
	fmt.Println()
	return nil
}

func runGoalsRemove(_ *cobra.Command, args []string) error {
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

	idx, ok := findGoal(data.SavingsGoal.Goals, args[0])
	if !ok {
		return fmt.Errorf("no goal named %q", args[0])
	}
	data.SavingsGoal.Goals = append(data.SavingsGoal.Goals[:idx], data.SavingsGoal.Goals[idx+1:]...)

	if err := saveSnapshot(st, data); err != nil {
		return err
	}
	fmt.Printf("  Removed goal %q\n", args[0])
	return nil
}

func runGoalsFund(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}

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

	idx, ok := findGoal(data.SavingsGoal.Goals, args[0])
	if !ok {
		return fmt.Errorf("no goal named %q", args[0])
	}

	g := data.SavingsGoal.Goals[idx]
	g.CurrentAmount += amount
	g = goal.ApplyAlerts(g, time.Now(), config.AlertThresholds(cfg))
	data.SavingsGoal.Goals[idx] = g
	data.Transactions = append(data.Transactions, model.Transaction{
		ID:          model.NewID(),
		Amount:      amount,
		Category:    "savings",
		Date:        time.Now(),
		Type:        model.TransactionIncome,
		Description: "fund: " + g.Name,
	})

	if err := saveSnapshot(st, data); err != nil {
		return err
	}

	fmt.Printf("  %s now at %s\n", g.Name, cli.RenderProgressBar(g.CurrentAmount, g.TargetAmount, 24))
	for _, a := range g.Alerts {
		if time.Since(a.CreatedAt) < time.Minute {
			fmt.Printf("  %s\n", a.Message)
		}
	}
	return nil
}

func findGoal(goals []model.Goal, name string) (int, bool) {
	for i, g := range goals {
		if strings.EqualFold(g.Name, name) {
			return i, true
		}
	}
	return 0, false
}

func validGoalCategory(c model.GoalCategory) bool {
	for _, known := range model.GoalCategories {
		if c == known {
			return true
		}
	}
	return false
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	s = strings.ReplaceAll(s, ",", "")
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if amount < 0 {
		return 0, errors.New("amount must not be negative")
	}
	return amount, nil
}
