package sim

import (
	"math"
	"testing"
	"time"

	"github.com/mikeintech/budgetterrr/internal/model"
)

func testBudget() model.Budget {
	return model.Budget{
		Income: 5000,
		Expenses: map[string]float64{
			"housing":       1500,
			"food":          600,
			"entertainment": 200,
			"utilities":     150,
		},
		TargetSavings: 500,
		CurrentCash:   2000,
		PaySchedule: model.PaySchedule{
			Frequency:   model.Monthly,
			NextPayDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Amount:      5000,
		},
	}
}

func testSavingsGoal() model.SavingsGoal {
	return model.SavingsGoal{Amount: 12000, TimelineMonths: 24, CurrentAmount: 3000}
}

func TestNewStateClonesInputs(t *testing.T) {
	budget := testBudget()
	state := NewState(budget, testSavingsGoal())

	state.Budget.Expenses["food"] = 9999
	if budget.Expenses["food"] != 600 {
		t.Error("mutating simulation state leaked into the live budget")
	}
	if len(state.Scenarios) != 3 {
		t.Fatalf("scenario catalogue = %d entries, want 3", len(state.Scenarios))
	}
}

func TestAggressiveSavings(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())
	got := Apply(state, ScenarioAggressiveSavings)

	if got.Budget.TargetSavings != 600 {
		t.Errorf("TargetSavings = %.2f, want 600 (500 x 1.2)", got.Budget.TargetSavings)
	}
	if got.Budget.Income != 5000 {
		t.Errorf("Income changed: %.2f", got.Budget.Income)
	}
	if got.Budget.Expenses["food"] != 600 {
		t.Errorf("expenses changed: food = %.2f", got.Budget.Expenses["food"])
	}
	if !got.IsActive(ScenarioAggressiveSavings) {
		t.Error("scenario not recorded as active")
	}
}

func TestExpenseReductionTrimsDiscretionaryOnly(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())
	got := Apply(state, ScenarioExpenseReduction)

	if got.Budget.Expenses["food"] != 510 {
		t.Errorf("food = %.2f, want 510 (600 x 0.85)", got.Budget.Expenses["food"])
	}
	if got.Budget.Expenses["entertainment"] != 170 {
		t.Errorf("entertainment = %.2f, want 170", got.Budget.Expenses["entertainment"])
	}
	if got.Budget.Expenses["housing"] != 1500 || got.Budget.Expenses["utilities"] != 150 {
		t.Error("essential categories were trimmed")
	}
}

func TestIncomeBoost(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())
	got := Apply(state, ScenarioIncomeBoost)

	if got.Budget.Income != 5500 {
		t.Errorf("Income = %.2f, want 5500", got.Budget.Income)
	}
	if math.Abs(got.Budget.PaySchedule.Amount-5500) > 1e-9 {
		t.Errorf("PaySchedule.Amount = %.2f, want 5500", got.Budget.PaySchedule.Amount)
	}
}

func TestApplyDuplicateIsNoOp(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())
	once := Apply(state, ScenarioAggressiveSavings)
	twice := Apply(once, ScenarioAggressiveSavings)

	if twice.Budget.TargetSavings != 600 {
		t.Errorf("TargetSavings after duplicate apply = %.2f, want 600", twice.Budget.TargetSavings)
	}
	if len(twice.ActiveScenarios) != 1 {
		t.Errorf("ActiveScenarios = %v, want single entry", twice.ActiveScenarios)
	}
}

func TestApplyUnknownScenario(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())
	got := Apply(state, "win-lottery")

	if len(got.ActiveScenarios) != 0 {
		t.Error("unknown scenario recorded as active")
	}
	if got.Budget.TargetSavings != 500 {
		t.Error("unknown scenario changed the budget")
	}
}

func TestScenarioImpacts(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())

	impacts := map[string]float64{}
	for _, sc := range state.Scenarios {
		impacts[sc.ID] = sc.Impact
	}
	if impacts[ScenarioAggressiveSavings] != 500*0.2*12 {
		t.Errorf("aggressive savings impact = %.2f", impacts[ScenarioAggressiveSavings])
	}
	if impacts[ScenarioExpenseReduction] != 2450*0.15*12 {
		t.Errorf("expense reduction impact = %.2f", impacts[ScenarioExpenseReduction])
	}
	if impacts[ScenarioIncomeBoost] != 5000*0.1*12 {
		t.Errorf("income boost impact = %.2f", impacts[ScenarioIncomeBoost])
	}
}

func TestProjectedSavings(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())
	// (5000 - 2450 - 500) * 12
	if got := ProjectedSavings(state); got != 24600 {
		t.Errorf("ProjectedSavings = %.2f, want 24600", got)
	}
}

func TestTimeToGoal(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())
	// ceil((12000-3000)/500) = 18
	if got := TimeToGoal(state); got != 18 {
		t.Errorf("TimeToGoal = %v, want 18", got)
	}

	state.Budget.TargetSavings = 0
	if got := TimeToGoal(state); !math.IsInf(got, 1) {
		t.Errorf("zero savings: got %v, want +Inf", got)
	}
}

func TestStackedScenarios(t *testing.T) {
	state := NewState(testBudget(), testSavingsGoal())
	state = Apply(state, ScenarioIncomeBoost)
	state = Apply(state, ScenarioAggressiveSavings)

	if len(state.ActiveScenarios) != 2 {
		t.Fatalf("ActiveScenarios = %v", state.ActiveScenarios)
	}
	if state.Budget.Income != 5500 || state.Budget.TargetSavings != 600 {
		t.Errorf("stacked state: income %.0f savings %.0f", state.Budget.Income, state.Budget.TargetSavings)
	}
}
