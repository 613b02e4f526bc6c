package tui

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/mikeintech/budgetterrr/internal/cadence"
	"github.com/mikeintech/budgetterrr/internal/config"
	"github.com/mikeintech/budgetterrr/internal/model"
	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues collects first-run form input as strings; parsing happens
// once on completion.
type setupValues struct {
	payAmount     string
	frequency     model.PayFrequency
	nextPayDate   string
	targetSavings string
	currentCash   string
	theme         string
}

// newSetupForm builds the first-run wizard shown when the store is empty.
func newSetupForm(vals *setupValues) *huh.Form {
	vals.frequency = model.Biweekly
	vals.theme = theme.Active.Name

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.PayFrequency]().
				Title("How often do you get paid?").
				Options(
					huh.NewOption("Weekly", model.Weekly),
					huh.NewOption("Every 2 weeks", model.Biweekly),
					huh.NewOption("Twice a month", model.SemiMonthly),
					huh.NewOption("Monthly", model.Monthly),
				).
				Value(&vals.frequency),
			huh.NewInput().
				Title("Paycheck amount").
				Placeholder("2500").
				Validate(validateMoney).
				Value(&vals.payAmount),
			huh.NewInput().
				Title("Next pay date (YYYY-MM-DD, blank for two weeks out)").
				Placeholder("2026-09-15").
				Validate(validateOptionalDate).
				Value(&vals.nextPayDate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly savings target").
				Placeholder("500").
				Validate(validateMoney).
				Value(&vals.targetSavings),
			huh.NewInput().
				Title("Cash on hand right now").
				Placeholder("1200").
				Validate(validateMoney).
				Value(&vals.currentCash),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&vals.theme),
		),
	)
}

// buildSetupData turns completed form values into a fresh snapshot.
func buildSetupData(vals setupValues, now time.Time) model.UserData {
	data := model.DefaultUserData(now)

	amount := parseMoneyOrZero(vals.payAmount)
	data.Budget.PaySchedule.Frequency = vals.frequency
	data.Budget.PaySchedule.Amount = amount
	data.Budget.Income = cadence.ToMonthly(vals.frequency, amount)
	data.Budget.TargetSavings = parseMoneyOrZero(vals.targetSavings)
	data.Budget.CurrentCash = parseMoneyOrZero(vals.currentCash)

	if d, err := time.Parse("2006-01-02", strings.TrimSpace(vals.nextPayDate)); err == nil {
		data.Budget.PaySchedule.NextPayDate = d
	} else {
		data.Budget.PaySchedule.NextPayDate = now.AddDate(0, 0, 14)
	}

	return data
}

// saveSetupTheme persists the chosen theme and activates it.
func saveSetupTheme(name string) error {
	theme.SetActive(name)
	cfg, _ := config.Load()
	cfg.Appearance.Theme = name
	return config.Save(cfg)
}

func validateMoney(s string) error {
	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
	if s == "" {
		return errors.New("enter an amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("enter a number like 2500 or 2500.50")
	}
	if v < 0 {
		return errors.New("amount can't be negative")
	}
	return nil
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}

func parseMoneyOrZero(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", ""))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
