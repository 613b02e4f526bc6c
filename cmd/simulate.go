package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/config"
	"github.com/mikeintech/budgetterrr/internal/sim"
)

var flagSimApply []string

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Explore what-if scenarios against your budget",
	Long: "Simulate budget scenarios without touching your real data.\n" +
		"Repeat --apply to stack scenarios.",
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringArrayVar(&flagSimApply, "apply", nil,
		"Scenario to apply (aggressive-savings, expense-reduction, income-boost)")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(_ *cobra.Command, _ []string) error {
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

	state := sim.NewState(data.Budget, data.SavingsGoal)
	baseline := state

	for _, id := range flagSimApply {
		if !knownScenario(state, id) {
			return fmt.Errorf("unknown scenario %q", id)
		}
		state = sim.Apply(state, id)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("WHAT-IF SIMULATION"))
	fmt.Println()

	rows := make([][]string, 0, len(state.Scenarios))
	for _, sc := range state.Scenarios {
		active := ""
		if state.IsActive(sc.ID) {
			active = "applied"
		}
		rows = append(rows, []string{
			sc.ID,
			sc.Description,
			cli.FormatMoneyDelta(sc.Impact) + "/yr",
			active,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Scenarios",
		Headers: []string{"Scenario", "Effect", "Est. impact", ""},
		Rows:    rows,
	}))

	comparison := [][]string{
		{"Monthly income", cli.FormatMoney(baseline.Budget.Income), cli.FormatMoney(state.Budget.Income)},
		{"Monthly expenses", cli.FormatMoney(baseline.Budget.MonthlyExpenses()), cli.FormatMoney(state.Budget.MonthlyExpenses())},
		{"Target savings", cli.FormatMoney(baseline.Budget.TargetSavings), cli.FormatMoney(state.Budget.TargetSavings)},
		{"---"},
		{"Projected savings/yr", cli.FormatMoney(sim.ProjectedSavings(baseline)), cli.FormatMoney(sim.ProjectedSavings(state))},
		{"Time to goal", cli.FormatMonths(sim.TimeToGoal(baseline)), cli.FormatMonths(sim.TimeToGoal(state))},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Baseline vs simulated",
		Headers: []string{"Figure", "Now", "Simulated"},
		Rows:    comparison,
	}))

	if len(flagSimApply) == 0 {
		fmt.Println("  Apply a scenario: budgetterrr simulate --apply income-boost")
		fmt.Println()
	}
	return nil
}

func knownScenario(state sim.State, id string) bool {
	for _, sc := range state.Scenarios {
		if sc.ID == id {
			return true
		}
	}
	return false
}
