package engine

import (
	"math"
	"testing"
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
)

func snapshotMonthly(t *testing.T) model.UserData {
	t.Helper()
	data := model.DefaultUserData(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	data.Budget.Income = 3000
	data.Budget.CurrentCash = 1000
	data.Budget.TargetSavings = 500
	data.Budget.Expenses = map[string]float64{
		"housing": 1200,
		"food":    500,
		"other":   300,
	}
	data.Budget.PaySchedule = model.PaySchedule{
		Frequency:   model.Monthly,
		NextPayDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:      3000,
	}
	return data
}

func TestCatchUpTwoMonthlyPeriods(t *testing.T) {
	data := snapshotMonthly(t)
	// Two months past the stored pay date: expenses 2000/mo, savings 500/mo.
	now := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)

	got := CatchUp(data, now)

	if periods := PeriodsElapsed(data, now); periods != 2 {
		t.Fatalf("PeriodsElapsed = %d, want 2", periods)
	}
	// netChangePerPeriod = 3000 - 2000 - 500 = 500
	if got.Budget.CurrentCash != 2000 {
		t.Errorf("CurrentCash = %.2f, want 2000", got.Budget.CurrentCash)
	}
	if got.SavingsGoal.CurrentAmount != 1000 {
		t.Errorf("SavingsGoal.CurrentAmount = %.2f, want 1000", got.SavingsGoal.CurrentAmount)
	}
	wantDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Budget.PaySchedule.NextPayDate.Equal(wantDate) {
		t.Errorf("NextPayDate = %s, want %s", got.Budget.PaySchedule.NextPayDate, wantDate)
	}
}

func TestCatchUpNoOpBeforePayDate(t *testing.T) {
	data := snapshotMonthly(t)
	now := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	got := CatchUp(data, now)
	if got.Budget.CurrentCash != data.Budget.CurrentCash {
		t.Errorf("CurrentCash changed before pay date: %.2f", got.Budget.CurrentCash)
	}
	if !got.Budget.PaySchedule.NextPayDate.Equal(data.Budget.PaySchedule.NextPayDate) {
		t.Error("NextPayDate changed before pay date")
	}
}

func TestCatchUpPartialPeriodNoOp(t *testing.T) {
	data := snapshotMonthly(t)
	// Past the pay date but less than one 30-day approximation.
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	got := CatchUp(data, now)
	if got.Budget.CurrentCash != data.Budget.CurrentCash {
		t.Errorf("CurrentCash changed within a partial period: %.2f", got.Budget.CurrentCash)
	}
}

func TestCatchUpIdempotent(t *testing.T) {
	data := snapshotMonthly(t)
	now := time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC)

	once := CatchUp(data, now)
	twice := CatchUp(once, now)

	if once.Budget.CurrentCash != twice.Budget.CurrentCash {
		t.Errorf("cash not idempotent: %.2f vs %.2f", once.Budget.CurrentCash, twice.Budget.CurrentCash)
	}
	if once.SavingsGoal.CurrentAmount != twice.SavingsGoal.CurrentAmount {
		t.Errorf("savings not idempotent: %.2f vs %.2f",
			once.SavingsGoal.CurrentAmount, twice.SavingsGoal.CurrentAmount)
	}
	if !once.Budget.PaySchedule.NextPayDate.Equal(twice.Budget.PaySchedule.NextPayDate) {
		t.Error("NextPayDate not idempotent")
	}
}

func TestCatchUpBiweeklyUsesDivisor(t *testing.T) {
	data := snapshotMonthly(t)
	data.Budget.PaySchedule.Frequency = model.Biweekly
	data.Budget.PaySchedule.Amount = 1385
	// 28 days past: exactly 2 biweekly periods.
	now := data.Budget.PaySchedule.NextPayDate.AddDate(0, 0, 29)

	got := CatchUp(data, now)

	savingsPerPeriod := 500.0 / 2.17
	expensesPerPeriod := 2000.0 / 2.17
	wantCash := 1000 + (1385-expensesPerPeriod-savingsPerPeriod)*2
	if math.Abs(got.Budget.CurrentCash-wantCash) > 1e-9 {
		t.Errorf("CurrentCash = %.4f, want %.4f", got.Budget.CurrentCash, wantCash)
	}
	wantSavings := savingsPerPeriod * 2
	if math.Abs(got.SavingsGoal.CurrentAmount-wantSavings) > 1e-9 {
		t.Errorf("SavingsGoal.CurrentAmount = %.4f, want %.4f", got.SavingsGoal.CurrentAmount, wantSavings)
	}
	wantDate := data.Budget.PaySchedule.NextPayDate.AddDate(0, 0, 28)
	if !got.Budget.PaySchedule.NextPayDate.Equal(wantDate) {
		t.Errorf("NextPayDate = %s, want %s", got.Budget.PaySchedule.NextPayDate, wantDate)
	}
}

func TestCatchUpZeroPayDateDegradesToNoOp(t *testing.T) {
	data := snapshotMonthly(t)
	data.Budget.PaySchedule.NextPayDate = time.Time{}

	got := CatchUp(data, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	if got.Budget.CurrentCash != data.Budget.CurrentCash {
		t.Error("zero pay date should be a no-op")
	}
}

func TestCatchUpDoesNotMutateInput(t *testing.T) {
	data := snapshotMonthly(t)
	originalCash := data.Budget.CurrentCash
	originalDate := data.Budget.PaySchedule.NextPayDate

	_ = CatchUp(data, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	if data.Budget.CurrentCash != originalCash {
		t.Error("input snapshot cash was mutated")
	}
	if !data.Budget.PaySchedule.NextPayDate.Equal(originalDate) {
		t.Error("input snapshot pay date was mutated")
	}
}

func TestCatchUpCountsCustomExpenses(t *testing.T) {
	data := snapshotMonthly(t)
	data.Budget.CustomExpenses = []model.ExpenseCategory{
		{ID: model.NewID(), Name: "gym", Amount: 100},
	}
	now := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)

	got := CatchUp(data, now)
	// One period: 3000 - (2000+100) - 500 = 400 net.
	if got.Budget.CurrentCash != 1400 {
		t.Errorf("CurrentCash = %.2f, want 1400", got.Budget.CurrentCash)
	}
}
