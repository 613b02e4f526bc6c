package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "budgetterrr.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleData() model.UserData {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	data := model.DefaultUserData(now)
	data.Budget.Income = 4200
	data.Budget.Expenses["housing"] = 1500
	data.Budget.CustomExpenses = []model.ExpenseCategory{
		{ID: model.NewID(), Name: "gym", Amount: 45},
	}
	data.Budget.TargetSavings = 600
	data.Budget.CurrentCash = 2500
	data.SavingsGoal.Amount = 15000
	data.SavingsGoal.CurrentAmount = 1200
	data.SavingsGoal.Goals = []model.Goal{
		{
			ID:               model.NewID(),
			Name:             "emergency fund",
			Category:         model.CategoryEmergency,
			TargetAmount:     10000,
			CurrentAmount:    2600,
			TargetDate:       now.AddDate(1, 0, 0),
			Priority:         model.PriorityHigh,
			AutoSave:         true,
			CreatedAt:        now,
			HighestMilestone: 25,
			Alerts: []model.GoalAlert{
				{ID: model.NewID(), Type: model.AlertMilestone, Message: "25% of your goal achieved!", Threshold: 25, CreatedAt: now},
			},
		},
	}
	data.Debts = []model.DebtAccount{
		{ID: model.NewID(), Name: "visa", Balance: 1200, InterestRate: 19.99, MinimumPayment: 50, Type: model.DebtCreditCard},
	}
	data.Transactions = []model.Transaction{
		{ID: model.NewID(), Amount: 100, Category: "savings", Date: now, Type: model.TransactionIncome, Description: "transfer"},
	}
	return data
}

func TestLoadEmptyReturnsDefaults(t *testing.T) {
	s := openTestStore(t)

	data, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(data.Budget.Expenses) != len(model.FixedExpenseCategories) {
		t.Errorf("default expense categories = %d, want %d", len(data.Budget.Expenses), len(model.FixedExpenseCategories))
	}
	if data.Budget.PaySchedule.Frequency != model.Monthly {
		t.Errorf("default frequency = %q", data.Budget.PaySchedule.Frequency)
	}
	if data.SavingsGoal.TimelineMonths != 12 {
		t.Errorf("default timeline = %d", data.SavingsGoal.TimelineMonths)
	}

	empty, err := s.Empty()
	if err != nil {
		t.Fatalf("Empty: %v", err)
	}
	if !empty {
		t.Error("fresh store should report empty")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	want := sampleData()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Budget.Income != 4200 || got.Budget.CurrentCash != 2500 {
		t.Errorf("budget figures: income %.0f cash %.0f", got.Budget.Income, got.Budget.CurrentCash)
	}
	if got.Budget.Expenses["housing"] != 1500 {
		t.Errorf("housing = %.0f", got.Budget.Expenses["housing"])
	}
	if len(got.Budget.CustomExpenses) != 1 || got.Budget.CustomExpenses[0].Name != "gym" {
		t.Errorf("custom expenses = %+v", got.Budget.CustomExpenses)
	}
	if !got.Budget.PaySchedule.NextPayDate.Equal(want.Budget.PaySchedule.NextPayDate) {
		t.Errorf("next pay date = %s, want %s", got.Budget.PaySchedule.NextPayDate, want.Budget.PaySchedule.NextPayDate)
	}
	if got.SavingsGoal.Amount != 15000 || got.SavingsGoal.CurrentAmount != 1200 {
		t.Errorf("savings goal = %+v", got.SavingsGoal)
	}

	if len(got.SavingsGoal.Goals) != 1 {
		t.Fatalf("goals = %d, want 1", len(got.SavingsGoal.Goals))
	}
	g := got.SavingsGoal.Goals[0]
	if g.HighestMilestone != 25 {
		t.Errorf("HighestMilestone = %v, want 25", g.HighestMilestone)
	}
	if !g.AutoSave {
		t.Error("AutoSave lost in round trip")
	}
	if len(g.Alerts) != 1 || g.Alerts[0].Type != model.AlertMilestone {
		t.Errorf("alerts = %+v", g.Alerts)
	}

	if len(got.Debts) != 1 || got.Debts[0].Type != model.DebtCreditCard {
		t.Errorf("debts = %+v", got.Debts)
	}
	if len(got.Transactions) != 1 || got.Transactions[0].Description != "transfer" {
		t.Errorf("transactions = %+v", got.Transactions)
	}
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	s := openTestStore(t)
	first := sampleData()
	if err := s.Save(first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := sampleData()
	second.Budget.Income = 9000
	second.SavingsGoal.Goals = nil
	second.Debts = nil
	second.Transactions = nil
	if err := s.Save(second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Budget.Income != 9000 {
		t.Errorf("income = %.0f, want 9000", got.Budget.Income)
	}
	if len(got.SavingsGoal.Goals) != 0 {
		t.Errorf("stale goals survived: %d", len(got.SavingsGoal.Goals))
	}
	if len(got.Debts) != 0 || len(got.Transactions) != 0 {
		t.Error("stale debts or transactions survived")
	}
}

func TestSchemaVersion(t *testing.T) {
	s := openTestStore(t)
	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != schemaVersion {
		t.Errorf("version = %q, want %q", v, schemaVersion)
	}
}
