package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mikeintech/budgetterrr/internal/cadence"
	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/config"
	"github.com/mikeintech/budgetterrr/internal/model"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, _ := config.Load()
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	data, err := st.Load()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("  Welcome to budgetterrr!")
	fmt.Println()

	// 1. Pay frequency
	fmt.Println("  1. How often do you get paid?")
	fmt.Println("     (1) Weekly")
	fmt.Println("     (2) Every 2 weeks")
	fmt.Println("     (3) Twice a month")
	fmt.Println("     (4) Monthly [default]")
	fmt.Print("     > ")
	choice := readLine(reader)
	switch choice {
	case "1":
		data.Budget.PaySchedule.Frequency = model.Weekly
	case "2":
		data.Budget.PaySchedule.Frequency = model.Biweekly
	case "3":
		data.Budget.PaySchedule.Frequency = model.SemiMonthly
	default:
		data.Budget.PaySchedule.Frequency = model.Monthly
	}
	fmt.Println()

	// 2. Paycheck amount, converted to a monthly income figure.
	fmt.Printf("  2. Paycheck amount (%s)\n", cli.FormatFrequency(data.Budget.PaySchedule.Frequency))
	fmt.Print("     > $")
	if amount, ok := readMoney(reader); ok {
		data.Budget.PaySchedule.Amount = amount
		data.Budget.Income = cadence.ToMonthly(data.Budget.PaySchedule.Frequency, amount)
	}
	fmt.Println()

	// 3. Next pay date
	fmt.Println("  3. Next pay date (YYYY-MM-DD, blank for two weeks out)")
	fmt.Print("     > ")
	if line := readLine(reader); line != "" {
		if d, err := time.Parse("2006-01-02", line); err == nil {
			data.Budget.PaySchedule.NextPayDate = d
		} else {
			fmt.Println("     Could not parse date, keeping current value.")
		}
	} else if data.Budget.PaySchedule.NextPayDate.IsZero() {
		data.Budget.PaySchedule.NextPayDate = time.Now().AddDate(0, 0, 14)
	}
	fmt.Println()

	// 4. Monthly expenses per fixed category
	fmt.Println("  4. Monthly expenses (blank to keep current)")
	if data.Budget.Expenses == nil {
		data.Budget.Expenses = make(map[string]float64)
	}
	for _, category := range model.FixedExpenseCategories {
		fmt.Printf("     %-16s [%s] > $", category, cli.FormatMoney(data.Budget.Expenses[category]))
		if amount, ok := readMoney(reader); ok {
			data.Budget.Expenses[category] = amount
		}
	}
	fmt.Println()

	// 5. Savings target
	fmt.Println("  5. Monthly savings target")
	fmt.Print("     > $")
	if amount, ok := readMoney(reader); ok {
		data.Budget.TargetSavings = amount
	}
	fmt.Println()

	// 6. Cash on hand
	fmt.Println("  6. Current cash on hand")
	fmt.Print("     > $")
	if amount, ok := readMoney(reader); ok {
		data.Budget.CurrentCash = amount
	}
	fmt.Println()

	// 7. Theme
	fmt.Println("  7. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	switch readLine(reader) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	if err := saveSnapshot(st, data); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `budgetterrr setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

// readMoney parses a dollar input, tolerating commas and a leading $.
// Returns false for blank or unparseable input.
func readMoney(reader *bufio.Reader) (float64, bool) {
	line := readLine(reader)
	if line == "" {
		return 0, false
	}
	line = strings.TrimPrefix(line, "$")
	line = strings.ReplaceAll(line, ",", "")
	amount, err := strconv.ParseFloat(line, 64)
	if err != nil || amount < 0 {
		fmt.Println("     Could not parse amount, keeping current value.")
		return 0, false
	}
	return amount, true
}
