// Package model defines domain types for budgetterrr: budgets, pay
// schedules, savings goals, debts, and the persisted user snapshot.
package model

import (
	"time"

	"github.com/google/uuid"
)

// PayFrequency is the cadence between paychecks.
type PayFrequency string

// Supported pay frequencies.
const (
	Weekly      PayFrequency = "weekly"
	Biweekly    PayFrequency = "biweekly"
	SemiMonthly PayFrequency = "semi_monthly"
	Monthly     PayFrequency = "monthly"
)

// ExpenseAllocation controls how monthly expenses are split across checks.
type ExpenseAllocation string

// Supported expense allocation modes.
const (
	AllocateEvenly     ExpenseAllocation = "evenly"
	AllocateFirstCheck ExpenseAllocation = "first_check"
	AllocateLastCheck  ExpenseAllocation = "last_check"
	AllocateCustom     ExpenseAllocation = "custom"
)

// PaySchedule describes when and how much the user gets paid.
// NextPayDate is always a concrete date, never relative.
type PaySchedule struct {
	Frequency    PayFrequency `json:"frequency"`
	DayOfWeek    int          `json:"dayOfWeek,omitempty"`
	FirstPayDay  int          `json:"firstPayDay,omitempty"`
	SecondPayDay int          `json:"secondPayDay,omitempty"`
	NextPayDate  time.Time    `json:"nextPayDate"`
	Amount       float64      `json:"amount"`
}

// ExpenseCategory is a user-defined expense line item.
type ExpenseCategory struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Budget holds the user's monthly budget. Income and TargetSavings are
// always monthly-normalized figures; cadence conversion happens at the
// edit boundary, not in storage.
type Budget struct {
	Income            float64            `json:"income"`
	Expenses          map[string]float64 `json:"expenses"`
	CustomExpenses    []ExpenseCategory  `json:"customExpenses"`
	TargetSavings     float64            `json:"targetSavings"`
	CurrentCash       float64            `json:"currentCash"`
	PaySchedule       PaySchedule        `json:"paySchedule"`
	ExpenseAllocation ExpenseAllocation  `json:"expenseAllocation"`
}

// MonthlyExpenses sums the fixed category map plus all custom expenses.
func (b Budget) MonthlyExpenses() float64 {
	var total float64
	for _, amount := range b.Expenses {
		total += amount
	}
	for _, exp := range b.CustomExpenses {
		total += exp.Amount
	}
	return total
}

// GoalCategory classifies a savings goal.
type GoalCategory string

// Supported goal categories.
const (
	CategoryEmergency  GoalCategory = "emergency"
	CategoryVacation   GoalCategory = "vacation"
	CategoryCar        GoalCategory = "car"
	CategoryHouse      GoalCategory = "house"
	CategoryEducation  GoalCategory = "education"
	CategoryRetirement GoalCategory = "retirement"
	CategoryDebt       GoalCategory = "debt"
	CategoryOther      GoalCategory = "other"
)

// GoalCategories lists all categories in display order.
var GoalCategories = []GoalCategory{
	CategoryEmergency, CategoryVacation, CategoryCar, CategoryHouse,
	CategoryEducation, CategoryRetirement, CategoryDebt, CategoryOther,
}

// GoalPriority ranks a goal's importance.
type GoalPriority string

// Supported goal priorities.
const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

// AlertType classifies a goal alert.
type AlertType string

// Supported alert types.
const (
	AlertMilestone AlertType = "milestone"
	AlertBehind    AlertType = "behind"
	AlertAhead     AlertType = "ahead"
	AlertDeadline  AlertType = "deadline"
)

// GoalAlert records a condition that fired for a goal. Alerts are
// append-only; nothing deletes them automatically.
type GoalAlert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Message   string    `json:"message"`
	Threshold float64   `json:"threshold"`
	Triggered bool      `json:"triggered"`
	CreatedAt time.Time `json:"createdAt"`
}

// Goal is an independent named savings goal with its own alert history.
// HighestMilestone is the largest milestone threshold (e.g. 25, 50, 75)
// that has already produced an alert, so recomputation never re-fires or
// skips a milestone no matter how progress jumps between checks.
type Goal struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Category            GoalCategory `json:"category"`
	TargetAmount        float64      `json:"targetAmount"`
	CurrentAmount       float64      `json:"currentAmount"`
	TargetDate          time.Time    `json:"targetDate"`
	Priority            GoalPriority `json:"priority"`
	AutoSave            bool         `json:"autoSave"`
	MonthlyContribution float64      `json:"monthlyContribution"`
	CreatedAt           time.Time    `json:"createdAt"`
	HighestMilestone    float64      `json:"highestMilestone"`
	Alerts              []GoalAlert  `json:"alerts"`
}

// SavingsGoal holds the primary savings target plus the list of
// independent named goals.
type SavingsGoal struct {
	Amount         float64   `json:"amount"`
	TimelineMonths int       `json:"timeline"`
	StartDate      time.Time `json:"startDate"`
	CurrentAmount  float64   `json:"currentAmount"`
	Goals          []Goal    `json:"goals"`
}

// DebtType classifies a debt account.
type DebtType string

// Supported debt account types.
const (
	DebtCreditCard   DebtType = "credit_card"
	DebtStudentLoan  DebtType = "student_loan"
	DebtCarLoan      DebtType = "car_loan"
	DebtPersonalLoan DebtType = "personal_loan"
	DebtMortgage     DebtType = "mortgage"
	DebtOther        DebtType = "other"
)

// DebtAccount is a single debt. Balance changes only through explicit
// snapshot replacement; amortization is a pure projection over it.
type DebtAccount struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Balance        float64  `json:"balance"`
	InterestRate   float64  `json:"interestRate"` // percent APR
	MinimumPayment float64  `json:"minimumPayment"`
	Type           DebtType `json:"type"`
}

// AmortizationEntry is one simulated payment period in a debt schedule.
// Schedules are recomputed on demand and never persisted.
type AmortizationEntry struct {
	Date             time.Time `json:"date"`
	Payment          float64   `json:"payment"`
	Principal        float64   `json:"principal"`
	Interest         float64   `json:"interest"`
	RemainingBalance float64   `json:"remainingBalance"`
}

// TransactionType marks a transaction as income or expense.
type TransactionType string

// Supported transaction types.
const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single recorded income or expense event.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Description string          `json:"description"`
}

// UserData is the complete persisted snapshot of a user's financial
// state. It is the unit of persistence: stores and the sync client
// replace it atomically, never partially.
type UserData struct {
	SavingsGoal  SavingsGoal   `json:"savingsGoal"`
	Budget       Budget        `json:"budget"`
	Transactions []Transaction `json:"transactions"`
	Debts        []DebtAccount `json:"debts"`
}

// Clone returns a deep copy of the snapshot. Engines that build mutable
// what-if state start from a clone so the live snapshot stays untouched.
func (d UserData) Clone() UserData {
	out := d
	out.Budget = d.Budget.Clone()
	out.SavingsGoal = d.SavingsGoal.Clone()
	out.Transactions = append([]Transaction(nil), d.Transactions...)
	out.Debts = append([]DebtAccount(nil), d.Debts...)
	return out
}

// Clone returns a deep copy of the budget.
func (b Budget) Clone() Budget {
	out := b
	out.Expenses = make(map[string]float64, len(b.Expenses))
	for k, v := range b.Expenses {
		out.Expenses[k] = v
	}
	out.CustomExpenses = append([]ExpenseCategory(nil), b.CustomExpenses...)
	return out
}

// Clone returns a deep copy of the savings goal and its named goals.
func (g SavingsGoal) Clone() SavingsGoal {
	out := g
	out.Goals = make([]Goal, len(g.Goals))
	for i, goal := range g.Goals {
		goal.Alerts = append([]GoalAlert(nil), goal.Alerts...)
		out.Goals[i] = goal
	}
	return out
}

// NetSavings sums transactions: income adds, expenses subtract.
func NetSavings(transactions []Transaction) float64 {
	var total float64
	for _, t := range transactions {
		if t.Type == TransactionIncome {
			total += t.Amount
		} else {
			total -= t.Amount
		}
	}
	return total
}

// NewID returns a fresh unique identifier for goals, debts, and alerts.
func NewID() string {
	return uuid.NewString()
}
