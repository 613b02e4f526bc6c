// Package sim builds what-if simulation state over a budget snapshot.
package sim

import (
	"math"

	"github.com/mikeintech/budgetterrr/internal/goal"
	"github.com/mikeintech/budgetterrr/internal/model"
)

// Scenario ids in the fixed catalogue.
const (
	ScenarioAggressiveSavings = "aggressive-savings"
	ScenarioExpenseReduction  = "expense-reduction"
	ScenarioIncomeBoost       = "income-boost"
)

// discretionaryCategories are the expense keys the expense-reduction
// scenario trims; everything else is treated as essential.
var discretionaryCategories = map[string]bool{
	"entertainment": true,
	"food":          true,
}

// Scenario is a named, precomputed what-if transformation. Apply is a
// pure function of the state; scenarios carry no state of their own.
type Scenario struct {
	ID            string
	Name          string
	Description   string
	Impact        float64 // estimated annual dollar effect
	TimeReduction float64 // estimated months saved
	Apply         func(State) State
}

// State is the ephemeral simulation workspace: cloned budget and goal
// plus the scenario catalogue and the set of applied scenario ids. It is
// rebuilt from the live snapshot whenever the underlying data changes
// and is never persisted.
type State struct {
	Budget          model.Budget
	SavingsGoal     model.SavingsGoal
	Scenarios       []Scenario
	ActiveScenarios []string
}

// NewState clones the live budget and savings goal and generates the
// scenario catalogue with impacts precomputed from the pre-simulation
// figures.
func NewState(budget model.Budget, savingsGoal model.SavingsGoal) State {
	return State{
		Budget:      budget.Clone(),
		SavingsGoal: savingsGoal.Clone(),
		Scenarios:   generateScenarios(budget),
	}
}

func generateScenarios(budget model.Budget) []Scenario {
	monthlyIncome := budget.Income
	currentSavings := budget.TargetSavings
	currentExpenses := budget.MonthlyExpenses()

	return []Scenario{
		{
			ID:            ScenarioAggressiveSavings,
			Name:          "Aggressive Savings",
			Description:   "Increase savings rate by 20%",
			Impact:        currentSavings * 0.2 * 12,
			TimeReduction: 3,
			Apply: func(s State) State {
				s.Budget = s.Budget.Clone()
				s.Budget.TargetSavings = math.Round(s.Budget.TargetSavings * 1.2)
				return s
			},
		},
		{
			ID:            ScenarioExpenseReduction,
			Name:          "Expense Reduction",
			Description:   "Cut non-essential expenses by 15%",
			Impact:        currentExpenses * 0.15 * 12,
			TimeReduction: 2,
			Apply: func(s State) State {
				s.Budget = s.Budget.Clone()
				for category, amount := range s.Budget.Expenses {
					if discretionaryCategories[category] {
						s.Budget.Expenses[category] = math.Round(amount * 0.85)
					}
				}
				return s
			},
		},
		{
			ID:            ScenarioIncomeBoost,
			Name:          "Income Boost",
			Description:   "Side hustle or promotion",
			Impact:        monthlyIncome * 0.1 * 12,
			TimeReduction: 1.5,
			Apply: func(s State) State {
				s.Budget = s.Budget.Clone()
				s.Budget.Income = math.Round(s.Budget.Income * 1.1)
				s.Budget.PaySchedule.Amount = s.Budget.PaySchedule.Amount * 1.1
				return s
			},
		},
	}
}

// Apply runs the named scenario's transform and records it as active.
// Unknown ids and already-active scenarios are no-ops, so callers can
// toggle freely without duplicating effects.
func Apply(state State, scenarioID string) State {
	if state.IsActive(scenarioID) {
		return state
	}
	for _, sc := range state.Scenarios {
		if sc.ID == scenarioID {
			next := sc.Apply(state)
			next.ActiveScenarios = append(append([]string(nil), state.ActiveScenarios...), scenarioID)
			return next
		}
	}
	return state
}

// IsActive reports whether a scenario has already been applied.
func (s State) IsActive(scenarioID string) bool {
	for _, id := range s.ActiveScenarios {
		if id == scenarioID {
			return true
		}
	}
	return false
}

// ProjectedSavings returns the simulated yearly cash surplus:
// (income - expenses - target savings) x 12.
func ProjectedSavings(state State) float64 {
	return (state.Budget.Income - state.Budget.MonthlyExpenses() - state.Budget.TargetSavings) * 12
}

// TimeToGoal returns whole months until the primary goal is reached at
// the simulated savings rate, +Inf when nothing is being saved.
func TimeToGoal(state State) float64 {
	return goal.TimeToGoal(state.SavingsGoal.CurrentAmount, state.SavingsGoal.Amount, state.Budget.TargetSavings)
}
