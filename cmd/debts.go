package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/config"
	"github.com/mikeintech/budgetterrr/internal/debt"
	"github.com/mikeintech/budgetterrr/internal/model"
)

var (
	flagDebtType    string
	flagDebtPayment float64
)

var debtsCmd = &cobra.Command{
	Use:   "debts",
	Short: "List and manage debt accounts",
	RunE:  runDebtsList,
}

var debtsAddCmd = &cobra.Command{
	Use:   "add <name> <balance> <apr> <minimum-payment>",
	Short: "Add a debt account",
	Args:  cobra.ExactArgs(4),
	RunE:  runDebtsAdd,
}

var debtsRemoveCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove"},
	Short:   "Remove a debt account",
	Args:    cobra.ExactArgs(1),
	RunE:    runDebtsRemove,
}

var debtsScheduleCmd = &cobra.Command{
	Use:   "schedule <name>",
	Short: "Show the payoff schedule for a debt",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebtsSchedule,
}

func init() {
	debtsAddCmd.Flags().StringVar(&flagDebtType, "type", "other", "Debt type (credit_card, student_loan, car_loan, personal_loan, mortgage, other)")
	debtsScheduleCmd.Flags().Float64Var(&flagDebtPayment, "payment", 0, "Monthly payment to simulate (default: minimum payment)")

	debtsCmd.AddCommand(debtsAddCmd)
	debtsCmd.AddCommand(debtsRemoveCmd)
	debtsCmd.AddCommand(debtsScheduleCmd)
	rootCmd.AddCommand(debtsCmd)
}

func runDebtsList(_ *cobra.Command, _ []string) error {
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

	if len(data.Debts) == 0 {
		fmt.Println()
		fmt.Println("  No debts tracked. Add one:")
		fmt.Println("    budgetterrr debts add \"Visa\" 1200 19.99 50 --type credit_card")
		fmt.Println()
		return nil
	}

	rows := make([][]string, 0, len(data.Debts))
	var totalBalance, totalMinimum float64
	for _, d := range data.Debts {
		payoff := "Never"
		schedule := debt.Amortize(d, d.MinimumPayment, startOfNextMonth())
		if debt.PaidOff(schedule) {
			payoff = cli.FormatDate(debt.PayoffDate(schedule))
		}
		rows = append(rows, []string{
			d.Name,
			debt.TypeLabel(d.Type),
			cli.FormatMoney(d.Balance),
			fmt.Sprintf("%.2f%%", d.InterestRate),
			cli.FormatMoney(d.MinimumPayment),
			payoff,
		})
		totalBalance += d.Balance
		totalMinimum += d.MinimumPayment
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", cli.FormatMoney(totalBalance), "", cli.FormatMoney(totalMinimum), ""})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Debt Accounts",
		Headers: []string{"Debt", "Type", "Balance", "APR", "Minimum", "Paid off"},
		Rows:    rows,
	}))

	return nil
}

func runDebtsAdd(_ *cobra.Command, args []string) error {
	balance, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	apr, err := parseAmount(strings.TrimSuffix(args[2], "%"))
	if err != nil {
		return err
	}
	minimum, err := parseAmount(args[3])
	if err != nil {
		return err
	}

	debtType := model.DebtType(strings.ToLower(flagDebtType))
	switch debtType {
	case model.DebtCreditCard, model.DebtStudentLoan, model.DebtCarLoan,
		model.DebtPersonalLoan, model.DebtMortgage, model.DebtOther:
	default:
		return fmt.Errorf("unknown debt type %q", flagDebtType)
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
	if _, ok := findDebt(data.Debts, args[0]); ok {
		return fmt.Errorf("debt %q already exists", args[0])
	}

	data.Debts = append(data.Debts, model.DebtAccount{
		ID:             model.NewID(),
		Name:           args[0],
		Balance:        balance,
		InterestRate:   apr,
		MinimumPayment: minimum,
		Type:           debtType,
	})

	if err := saveSnapshot(st, data); err != nil {
		return err
	}
	fmt.Printf("  Added %q: %s at %.2f%% APR\n", args[0], cli.FormatMoney(balance), apr)
	return nil
}

func runDebtsRemove(_ *cobra.Command, args []string) error {
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

	idx, ok := findDebt(data.Debts, args[0])
	if !ok {
		return fmt.Errorf("no debt named %q", args[0])
	}
	data.Debts = append(data.Debts[:idx], data.Debts[idx+1:]...)

	if err := saveSnapshot(st, data); err != nil {
		return err
	}
	fmt.Printf("  Removed debt %q\n", args[0])
	return nil
}

func runDebtsSchedule(_ *cobra.Command, args []string) error {
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

	idx, ok := findDebt(data.Debts, args[0])
	if !ok {
		return fmt.Errorf("no debt named %q", args[0])
	}
	d := data.Debts[idx]

	payment := flagDebtPayment
	if payment <= 0 {
		payment = d.MinimumPayment
	}

	schedule := debt.Amortize(d, payment, startOfNextMonth())
	if len(schedule) == 0 {
		fmt.Println("  Nothing to schedule: the balance is already zero.")
		return nil
	}

	fmt.Println()
	if !debt.PaidOff(schedule) {
		if payment <= d.Balance*d.InterestRate/100/12 {
			fmt.Printf("  %s never pays off %s: the payment doesn't cover interest.\n\n",
				cli.FormatMoney(payment), d.Name)
			return nil
		}
		fmt.Printf("  Showing the first %d payments; the balance outlives the projection.\n", len(schedule))
	}

	rows := make([][]string, 0, len(schedule))
	for i, entry := range schedule {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			cli.FormatDate(entry.Date),
			cli.FormatMoney(entry.Payment),
			cli.FormatMoney(entry.Principal),
			cli.FormatMoney(entry.Interest),
			cli.FormatMoney(entry.RemainingBalance),
		})
		// Long schedules show the first year then every 12th period.
		if len(schedule) > 24 && i >= 11 && (i+1)%12 != 0 && i != len(schedule)-1 {
			rows = rows[:len(rows)-1]
		}
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("%s at %s/month", d.Name, cli.FormatMoney(payment)),
		Headers: []string{"#", "Date", "Payment", "Principal", "Interest", "Balance"},
		Rows:    rows,
	}))

	if debt.PaidOff(schedule) {
		fmt.Printf("  Paid off %s with %s total interest\n\n",
			cli.FormatDate(debt.PayoffDate(schedule)),
			cli.FormatMoney(debt.TotalInterest(schedule)))
	}
	return nil
}

func findDebt(debts []model.DebtAccount, name string) (int, bool) {
	for i, d := range debts {
		if strings.EqualFold(d.Name, name) {
			return i, true
		}
	}
	return 0, false
}

func startOfNextMonth() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
